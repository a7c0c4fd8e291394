// Package client - post service REST client
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/alwitt/goutils"
	"github.com/alwitt/scribe/api"
	"github.com/alwitt/scribe/auth"
	"github.com/alwitt/scribe/models"
	"github.com/apex/log"
	"github.com/go-resty/resty/v2"
)

// Client post service client
type Client interface {
	/*
		CreatePost sign and submit a new post

			@param ctx context.Context - execution context
			@param signer *auth.Signer - the author
			@param identity string - the post identity
			@param topic string - the post topic
			@param content string - the post content
			@returns the stored post
	*/
	CreatePost(
		ctx context.Context, signer *auth.Signer, identity, topic, content string,
	) (models.Post, error)

	/*
		GetPost read back a post

			@param ctx context.Context - execution context
			@param identity string - the post identity
			@returns the post
	*/
	GetPost(ctx context.Context, identity string) (models.Post, error)
}

// restClient implements Client
type restClient struct {
	goutils.Component
	client *resty.Client
	now    func() time.Time
}

// ClientParams post service client parameters
type ClientParams struct {
	// BaseURL service base URL
	BaseURL string
	// Timeout per request timeout
	Timeout time.Duration
	// Retry request retry behavior. A create retried after the service already stored
	// the post reports IDENTITY_COLLISION.
	Retry goutils.HTTPClientRetryConfig
}

/*
NewClient define new post service client

	@param ctx context.Context - execution context
	@param params ClientParams - client parameters
	@returns client
*/
func NewClient(ctx context.Context, params ClientParams) (Client, error) {
	httpClient, err := goutils.DefineHTTPClient(ctx, params.Retry, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to define HTTP client [%w]", err)
	}
	httpClient.SetBaseURL(params.BaseURL)
	if params.Timeout > 0 {
		httpClient.SetTimeout(params.Timeout)
	}
	return &restClient{
		Component: goutils.Component{
			LogTags: log.Fields{"package": "scribe", "module": "client", "component": "rest-client"},
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		client: httpClient,
		now:    time.Now,
	}, nil
}

// asServiceError convert a failed response into the service reported error
func asServiceError(resp *resty.Response) error {
	if reported, ok := resp.Error().(*models.Error); ok && reported.Kind != "" {
		return reported
	}
	return fmt.Errorf("request failed with status %d", resp.StatusCode())
}

func (c *restClient) CreatePost(
	ctx context.Context, signer *auth.Signer, identity, topic, content string,
) (models.Post, error) {
	intent := auth.PostIntent{Identity: identity, Topic: topic, Content: content}
	token, err := signer.AuthorizeCreatePost(intent, c.now())
	if err != nil {
		return models.Post{}, err
	}

	var created models.Post
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(api.CreatePostBody{
			ID: identity, Topic: topic, Content: content, Author: signer.Principal().String(),
		}).
		SetResult(&created).
		SetError(&models.Error{}).
		Post("/v1/posts")
	if err != nil {
		return models.Post{}, fmt.Errorf("create post request failed [%w]", err)
	}
	if resp.StatusCode() != http.StatusCreated {
		return models.Post{}, asServiceError(resp)
	}

	log.WithFields(c.GetLogTagsForContext(ctx)).WithField("post-id", identity).Debug("Created post")
	return created, nil
}

func (c *restClient) GetPost(ctx context.Context, identity string) (models.Post, error) {
	var post models.Post
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("id", identity).
		SetResult(&post).
		SetError(&models.Error{}).
		Get("/v1/posts/{id}")
	if err != nil {
		return models.Post{}, fmt.Errorf("get post request failed [%w]", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return models.Post{}, asServiceError(resp)
	}
	return post, nil
}
