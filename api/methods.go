package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/scitags/sysinfo-go/types"
)

func handleRoot(c echo.Context) error {
	cc := c.(*extendedContext)
	return c.JSONPretty(http.StatusOK, &rootResponse{
		ApiRoutes: cc.apiRoutes,
	}, JSON_PRETTY_INDENT)
}

func fail(c echo.Context, code int, err error) error {
	return c.JSONPretty(code, &errorResponse{Error: err.Error()}, JSON_PRETTY_INDENT)
}

func verbosity(c echo.Context) (types.Verbosity, bool) {
	return types.ParseVerbosity(c.QueryParam("verbosity"))
}

func handleInterfaces(c echo.Context) error {
	cc := c.(*extendedContext)

	verb, ok := verbosity(c)
	if !ok {
		return fail(c, http.StatusBadRequest, fmt.Errorf("unknown verbosity %q", c.QueryParam("verbosity")))
	}

	reg, err := cc.server.enumerator.Enumerate()
	if err != nil {
		return fail(c, http.StatusInternalServerError, err)
	}

	return c.JSONPretty(http.StatusOK, types.NewRegistryReport(reg, cc.server.enumerator.String(), verb), JSON_PRETTY_INDENT)
}

func handleInterface(c echo.Context) error {
	cc := c.(*extendedContext)

	verb, ok := verbosity(c)
	if !ok {
		return fail(c, http.StatusBadRequest, fmt.Errorf("unknown verbosity %q", c.QueryParam("verbosity")))
	}

	reg, err := cc.server.enumerator.Enumerate()
	if err != nil {
		return fail(c, http.StatusInternalServerError, err)
	}

	name := c.Param("name")
	iface, ok := reg.Lookup(name)
	if !ok {
		return fail(c, http.StatusNotFound, fmt.Errorf("no addresses on interface %q", name))
	}

	return c.JSONPretty(http.StatusOK, types.NewInterfaceReport(iface, verb), JSON_PRETTY_INDENT)
}

// handleHost answers with whatever facts could be gathered. Missing ones
// are zeroed and logged.
func handleHost(c echo.Context) error {
	cc := c.(*extendedContext)

	report, err := cc.server.host()
	if err != nil {
		slog.Warn("couldn't collect every host fact", "err", err)
	}
	if report == nil {
		return fail(c, http.StatusInternalServerError, fmt.Errorf("couldn't collect the host facts: %w", err))
	}

	return c.JSONPretty(http.StatusOK, report, JSON_PRETTY_INDENT)
}
