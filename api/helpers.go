/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/mikeb26/chessclub-swiss/standings"
	"github.com/mikeb26/chessclub-swiss/store"
	"github.com/mikeb26/chessclub-swiss/swiss"
)

const maxBodyBytes = 1_048_576

type jsonResponse map[string]any

func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)",
				syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q",
					unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)",
				unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes",
				maxBodyBytes)
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		log.Printf("api.writeJSON: failed to encode response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	js = append(js, '\n')

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(js); err != nil {
		log.Printf("api.writeJSON: failed to write response: %v", err)
	}
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, text)
}

func errorResponse(w http.ResponseWriter, status int, message any) {
	writeJSON(w, status, jsonResponse{"error": message})
}

func badRequestResponse(w http.ResponseWriter, err error) {
	errorResponse(w, http.StatusBadRequest, err.Error())
}

// mapErrorToHTTP translates domain errors into HTTP responses.
func mapErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	var ve *swiss.ValidationError
	var pie *swiss.PairingImpossibleError
	var re *standings.RowError

	switch {
	case errors.Is(err, store.ErrNotFound):
		errorResponse(w, http.StatusNotFound,
			"the requested resource could not be found")

	case errors.As(err, &ve),
		errors.As(err, &re),
		errors.Is(err, store.ErrInvalid),
		errors.Is(err, standings.ErrUnknownResult):
		errorResponse(w, http.StatusUnprocessableEntity, err.Error())

	case errors.As(err, &pie),
		errors.Is(err, standings.ErrInvalidTransition),
		errors.Is(err, store.ErrRegistrationClosed),
		errors.Is(err, store.ErrTournamentOver),
		errors.Is(err, store.ErrRoundClosed),
		errors.Is(err, store.ErrRoundIncomplete),
		errors.Is(err, store.ErrResultMissing),
		errors.Is(err, store.ErrByeResult):
		errorResponse(w, http.StatusConflict, err.Error())

	default:
		log.Printf("api.%v %v: internal error: %v", r.Method, r.URL.Path, err)
		errorResponse(w, http.StatusInternalServerError,
			"the server encountered a problem and could not process your request")
	}
}
