package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/alwitt/scribe/auth"
	"github.com/alwitt/scribe/models"
	"github.com/alwitt/scribe/posts"
	"github.com/apex/log"
	"github.com/gorilla/mux"
)

// Transport level error kinds, alongside the post error kinds
const (
	// ErrorKindMalformedRequest the request could not be parsed
	ErrorKindMalformedRequest models.ErrorKindENUMType = "MALFORMED_REQUEST"
	// ErrorKindInternal the request failed for reasons unrelated to its content
	ErrorKindInternal models.ErrorKindENUMType = "INTERNAL"
)

// CreatePostBody create post request body
type CreatePostBody struct {
	// ID caller chosen post identity
	ID string `json:"id"`
	// Topic optional post topic
	Topic string `json:"topic"`
	// Content post content
	Content string `json:"content"`
	// Author principal claiming authorship
	Author string `json:"author"`
}

// AliveResponse liveness response
type AliveResponse struct {
	Alive bool `json:"alive"`
}

// statusOf HTTP status for a caller facing error kind
func statusOf(kind models.ErrorKindENUMType) int {
	switch kind {
	case models.ErrorKindTopicTooLong,
		models.ErrorKindContentTooLong,
		models.ErrorKindContentEmpty,
		models.ErrorKindInvalidIdentity,
		models.ErrorKindInvalidText,
		ErrorKindMalformedRequest:
		return http.StatusBadRequest
	case models.ErrorKindUnauthorized:
		return http.StatusUnauthorized
	case models.ErrorKindIdentityCollision:
		return http.StatusConflict
	case models.ErrorKindPostNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// reply write a JSON response
func (a *PostsAPI) reply(r *http.Request, w http.ResponseWriter, status int, payload interface{}) {
	if err := a.WriteRESTResponse(w, status, payload, nil); err != nil {
		log.WithError(err).WithFields(a.GetLogTagsForContext(r.Context())).
			Error("Failed to write response")
	}
}

// replyError respond with the caller facing form of the error. Anything without a
// kind is reported as internal, without detail.
func (a *PostsAPI) replyError(r *http.Request, w http.ResponseWriter, err error) {
	known, ok := models.AsError(err)
	if !ok {
		log.WithError(err).WithFields(a.GetLogTagsForContext(r.Context())).Error("Request failed")
		known = &models.Error{Kind: ErrorKindInternal, Message: "The request could not be processed."}
	}
	a.reply(r, w, statusOf(known.Kind), known)
}

// bearerToken the token of a "Bearer" Authorization header
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// Alive liveness probe
func (a *PostsAPI) Alive(w http.ResponseWriter, r *http.Request) {
	a.reply(r, w, http.StatusOK, AliveResponse{Alive: true})
}

// CreatePost create a new post
func (a *PostsAPI) CreatePost(w http.ResponseWriter, r *http.Request) {
	var body CreatePostBody
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		a.replyError(r, w, &models.Error{
			Kind:    ErrorKindMalformedRequest,
			Message: fmt.Sprintf("The request body is not a valid post: %s", err.Error()),
		})
		return
	}

	post, err := a.handler.CreatePost(r.Context(), posts.CreatePostRequest{
		Identity:      body.ID,
		Topic:         body.Topic,
		Content:       body.Content,
		Authorizer:    auth.Principal(body.Author),
		Authorization: bearerToken(r),
	})
	if err != nil {
		a.replyError(r, w, err)
		return
	}

	a.reply(r, w, http.StatusCreated, post)
}

// GetPost read back a post
func (a *PostsAPI) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := a.handler.GetPost(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		a.replyError(r, w, err)
		return
	}
	a.reply(r, w, http.StatusOK, post)
}
