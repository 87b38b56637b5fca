// Package rpc exposes the protocol over a single-endpoint JSON method
// dispatch for delegated collaborators: announcement and intent relay,
// commitment verification, sender-side stealth derivation. It handles only
// public values; no private key ever crosses this boundary.
package rpc

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"

	"github.com/dimfeld/httptreemux"
	"github.com/gorilla/handlers"
	"github.com/sipprotocol/sip/storage"
	"github.com/unrolled/render"
)

type R struct {
	Store *storage.BadgerStore
}

type Call struct {
	Method string `json:"method"`
	Params []any  `json:"params"`
}

func NewRouter(store *storage.BadgerStore) *httptreemux.TreeMux {
	router, impl := httptreemux.New(), &R{Store: store}
	router.POST("/", impl.handle)
	registerHanders(router)
	return router
}

func registerHanders(router *httptreemux.TreeMux) {
	router.MethodNotAllowedHandler = func(w http.ResponseWriter, r *http.Request, _ map[string]httptreemux.HandlerFunc) {
		render.New().JSON(w, http.StatusNotFound, map[string]any{})
	}
	router.NotFoundHandler = func(w http.ResponseWriter, r *http.Request) {
		render.New().JSON(w, http.StatusNotFound, map[string]any{})
	}
	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, rcv any) {
		buf := make([]byte, 1<<16)
		buf = buf[:runtime.Stack(buf, false)]
		err := fmt.Errorf("%v %s", rcv, buf)
		render.New().JSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
	}
}

func (impl *R) handle(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var call Call
	d := json.NewDecoder(r.Body)
	d.UseNumber()
	if err := d.Decode(&call); err != nil {
		render.New().JSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}
	switch call.Method {
	case "getinfo":
		result, err := getInfo(impl.Store)
		renderResult(w, result, err)
	case "submitannouncement":
		result, err := submitAnnouncement(impl.Store, call.Params)
		renderResult(w, result, err)
	case "listannouncements":
		result, err := listAnnouncements(impl.Store, call.Params)
		renderResult(w, result, err)
	case "submitintent":
		result, err := submitIntent(impl.Store, call.Params)
		renderResult(w, result, err)
	case "getintent":
		result, err := getIntent(impl.Store, call.Params)
		renderResult(w, result, err)
	case "verifycommitment":
		result, err := verifyCommitment(call.Params)
		renderResult(w, result, err)
	case "derivestealthaddress":
		result, err := deriveStealthAddress(call.Params)
		renderResult(w, result, err)
	default:
		render.New().JSON(w, http.StatusOK, map[string]any{"error": fmt.Sprintf("unknown method %s", call.Method)})
	}
}

func renderResult(w http.ResponseWriter, result any, err error) {
	if err != nil {
		render.New().JSON(w, http.StatusOK, map[string]any{"error": err.Error()})
		return
	}
	render.New().JSON(w, http.StatusOK, result)
}

func handleCORS(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Add("Access-Control-Allow-Headers", "Content-Type,Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "OPTIONS,GET,POST,DELETE")
		w.Header().Set("Access-Control-Max-Age", "600")
		if r.Method == "OPTIONS" {
			render.New().JSON(w, http.StatusOK, map[string]any{})
		} else {
			handler.ServeHTTP(w, r)
		}
	})
}

func StartHTTP(store *storage.BadgerStore, port int) error {
	router := NewRouter(store)
	handler := handleCORS(router)
	handler = handlers.ProxyHeaders(handler)

	server := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: handler}
	return server.ListenAndServe()
}
