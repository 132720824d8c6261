package v1_test

import (
	"net/http"

	v1 "github.com/ledgera/backend/internal/controllers/v1"
	"github.com/ledgera/backend/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCurrentUserOptions() {
	r := test.Request(suite.T(), testRouter, http.MethodOptions, "http://example.com/v1/settings/current-user", "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)
	assert.Equal(suite.T(), "OPTIONS, GET, PUT", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCurrentUserNotSet() {
	r := test.Request(suite.T(), testRouter, http.MethodGet, "http://example.com/v1/settings/current-user", "")
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
}

func (suite *TestSuiteStandard) TestCurrentUserUpdate() {
	r := test.Request(suite.T(), testRouter, http.MethodPut, "http://example.com/v1/settings/current-user", v1.CurrentUserEditable{Name: "Giulia"})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	r = test.Request(suite.T(), testRouter, http.MethodGet, "http://example.com/v1/settings/current-user", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.CurrentUserResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), "Giulia", response.Data.Name)

	// Setting again overwrites
	r = test.Request(suite.T(), testRouter, http.MethodPut, "http://example.com/v1/settings/current-user", v1.CurrentUserEditable{Name: "Marco"})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	r = test.Request(suite.T(), testRouter, http.MethodGet, "http://example.com/v1/settings/current-user", "")
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Marco", response.Data.Name)
}

func (suite *TestSuiteStandard) TestCurrentUserUpdateFails() {
	r := test.Request(suite.T(), testRouter, http.MethodPut, "http://example.com/v1/settings/current-user", "")
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)
}
