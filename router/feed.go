package router

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Gravitalia/feed/helpers"
	"github.com/Gravitalia/feed/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Feed returns the view-model of the screen
func Feed(screen Screen) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		jsonEncoder := json.NewEncoder(w)

		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			jsonEncoder.Encode(model.RequestError{
				Error:   true,
				Message: ErrorMethodNotAllowed,
			})
			return
		}

		jsonEncoder.Encode(screen.View())
	}
}

// Action applies a user action, such as /action/refresh, and returns
// the resulting view-model
func Action(screen Screen) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		jsonEncoder := json.NewEncoder(w)

		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			jsonEncoder.Encode(model.RequestError{
				Error:   true,
				Message: ErrorMethodNotAllowed,
			})
			return
		}

		action := cases.Title(language.English, cases.Compact).String(strings.TrimPrefix(req.URL.Path, "/action/"))
		switch action {
		case "Refresh":
			// loads outlive the request that triggered them
			if err := screen.Refresh(context.WithoutCancel(req.Context())); err != nil {
				helpers.Warn("refresh completed with errors", "error", err)
			}
		case "Open":
			screen.OpenModal()
		case "Close":
			screen.CloseModal()
		case "Dismiss":
			screen.DismissError()
		default:
			w.WriteHeader(http.StatusBadRequest)
			jsonEncoder.Encode(model.RequestError{
				Error:   true,
				Message: ErrorInvalidAction,
			})
			return
		}

		jsonEncoder.Encode(screen.View())
	}
}
