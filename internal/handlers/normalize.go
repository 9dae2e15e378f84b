package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/whatis/internal/dto"
	"github.com/GregMSThompson/whatis/internal/errs"
	"github.com/GregMSThompson/whatis/internal/models"
	"github.com/GregMSThompson/whatis/pkg/helpers"
)

const (
	commandParam = "command"
	verboseParam = "v"
	maxBodyBytes = 64 << 10
)

// normalizeQuery turns any accepted request shape into a Query:
// a /{command} path segment, a JSON body on GET / or POST /, or a bare
// GET / asking for usage.
func normalizeQuery(r *http.Request) (models.Query, error) {
	if command, ok := pathCommand(r); ok {
		return queryFromPath(r, command)
	}

	body, err := readBody(r)
	if err != nil {
		return models.Query{}, err
	}

	if len(body) == 0 {
		if r.Method == http.MethodGet {
			return models.Query{Kind: models.QueryUsage}, nil
		}
		return models.Query{}, errs.NewValidationError("request body is required")
	}

	return queryFromBody(body)
}

func pathCommand(r *http.Request) (string, bool) {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return "", false
	}
	for i, key := range rctx.URLParams.Keys {
		if key == commandParam {
			return rctx.URLParams.Values[i], true
		}
	}
	return "", false
}

func queryFromPath(r *http.Request, command string) (models.Query, error) {
	command, err := unescapeCommand(r, command)
	if err != nil {
		return models.Query{}, err
	}

	command = strings.TrimSpace(command)
	if command == "" {
		return models.Query{}, errs.NewValidationError("command must not be empty")
	}

	verbose, err := parseVerbose(r)
	if err != nil {
		return models.Query{}, err
	}

	return models.Query{
		Kind:    models.QueryPath,
		Subject: command,
		Verbose: verbose,
	}, nil
}

// unescapeCommand decodes the path segment when chi routed on RawPath,
// which it does whenever the client's escaping differs from Go's default.
// Otherwise the value is already decoded and must not be decoded twice.
func unescapeCommand(r *http.Request, command string) (string, error) {
	if r.URL.RawPath == "" {
		return command, nil
	}
	decoded, err := url.PathUnescape(command)
	if err != nil {
		return "", errs.NewValidationError("command is not a valid path segment")
	}
	return decoded, nil
}

// parseVerbose reads the optional v flag. A bare ?v counts as true.
func parseVerbose(r *http.Request) (bool, error) {
	values := r.URL.Query()
	if !values.Has(verboseParam) {
		return false, nil
	}

	raw := strings.ToLower(strings.TrimSpace(values.Get(verboseParam)))
	switch raw {
	case "", "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errs.NewValidationError(fmt.Sprintf("v must be a boolean, got %q", raw))
	}
	return v, nil
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, errs.NewMalformedBodyError("could not read request body")
	}
	if len(body) > maxBodyBytes {
		return nil, errs.NewMalformedBodyError("request body too large")
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, nil
	}
	return body, nil
}

func queryFromBody(body []byte) (models.Query, error) {
	var req dto.WhatisRequest
	if err := json.Unmarshal(body, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			if typeErr.Field == "" {
				return models.Query{}, errs.NewValidationError("request body must be a JSON object")
			}
			return models.Query{}, errs.NewValidationError(fmt.Sprintf("%s must be a %s", typeErr.Field, jsonKind(typeErr.Field)))
		}
		return models.Query{}, errs.NewMalformedBodyError("Invalid JSON in request body")
	}

	if req.CmdOrFunc == nil {
		return models.Query{}, errs.NewValidationError("cmd_or_func is required")
	}
	subject := strings.TrimSpace(*req.CmdOrFunc)
	if subject == "" {
		return models.Query{}, errs.NewValidationError("cmd_or_func must not be empty")
	}

	return models.Query{
		Kind:    models.QueryBody,
		Subject: subject,
		Verbose: helpers.ValueOr(req.Verbose, false),
	}, nil
}

func jsonKind(field string) string {
	if field == "verbose" {
		return "boolean"
	}
	return "string"
}
