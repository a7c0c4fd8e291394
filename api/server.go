// Package api - post service HTTP transport
package api

import (
	"net/http"
	"time"

	"github.com/alwitt/goutils"
	"github.com/alwitt/scribe/posts"
	"github.com/apex/log"
	"github.com/gorilla/mux"
)

// RequestIDHeader HTTP header carrying the request ID
const RequestIDHeader = "X-Request-ID"

// maxRequestBodyBytes upper bound on a request body; a full post is well below this
const maxRequestBodyBytes = 16 * 1024

// ServerParams HTTP server parameters
type ServerParams struct {
	// ListenAddr address the server listens on
	ListenAddr string
	// ReadTimeout request read timeout
	ReadTimeout time.Duration
	// WriteTimeout response write timeout
	WriteTimeout time.Duration
}

// PostsAPI post service REST handlers
type PostsAPI struct {
	goutils.RestAPIHandler
	handler posts.Handler
}

/*
NewPostsAPI define new post REST handlers

	@param handler posts.Handler - the post operations
	@returns handlers
*/
func NewPostsAPI(handler posts.Handler) *PostsAPI {
	requestIDHeader := RequestIDHeader
	return &PostsAPI{
		RestAPIHandler: goutils.RestAPIHandler{
			Component: goutils.Component{
				LogTags: log.Fields{"package": "scribe", "module": "api", "component": "posts"},
				LogTagModifiers: []goutils.LogMetadataModifier{
					goutils.ModifyLogMetadataByRestRequestParam,
				},
			},
			CallRequestIDHeaderField: &requestIDHeader,
			DoNotLogHeaders:          map[string]bool{"Authorization": true},
		},
		handler: handler,
	}
}

// Router the REST routes
func (a *PostsAPI) Router() *mux.Router {
	router := mux.NewRouter()
	v1 := router.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/alive", a.LoggingMiddleware(a.Alive)).Methods(http.MethodGet)
	v1.HandleFunc("/posts", a.LoggingMiddleware(a.CreatePost)).Methods(http.MethodPost)
	v1.HandleFunc("/posts/{id}", a.LoggingMiddleware(a.GetPost)).Methods(http.MethodGet)
	return router
}

/*
NewServer define the HTTP server hosting the post REST API

	@param params ServerParams - server parameters
	@param handler posts.Handler - the post operations
	@returns the server, not yet started
*/
func NewServer(params ServerParams, handler posts.Handler) *http.Server {
	if params.ReadTimeout <= 0 {
		params.ReadTimeout = time.Second * 15
	}
	if params.WriteTimeout <= 0 {
		params.WriteTimeout = time.Second * 15
	}
	return &http.Server{
		Addr:              params.ListenAddr,
		Handler:           NewPostsAPI(handler).Router(),
		ReadTimeout:       params.ReadTimeout,
		ReadHeaderTimeout: params.ReadTimeout,
		WriteTimeout:      params.WriteTimeout,
	}
}
