package posts_test

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alwitt/scribe/auth"
	mockauth "github.com/alwitt/scribe/mocks/auth"
	mockstore "github.com/alwitt/scribe/mocks/store"
	"github.com/alwitt/scribe/models"
	"github.com/alwitt/scribe/posts"
	"github.com/alwitt/scribe/store"
	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// testClock settable clock
type testClock struct {
	lock sync.Mutex
	now  time.Time
}

func (c *testClock) Now() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now = t
}

type handlerFixture struct {
	uut     posts.Handler
	records store.RecordStore
	clock   *testClock
	ids     *posts.IdentityGenerator
}

func newHandlerFixture(t *testing.T) handlerFixture {
	clock := &testClock{now: time.Unix(1700000000, 0)}
	records, err := store.NewMemoryStore()
	assert.Nil(t, err)
	verifier, err := auth.NewVerifier(auth.VerifierParams{MaxTokenAge: time.Minute, Now: clock.Now})
	assert.Nil(t, err)
	uut, err := posts.NewHandler(records, verifier, clock)
	assert.Nil(t, err)
	return handlerFixture{
		uut: uut, records: records, clock: clock, ids: posts.NewIdentityGenerator(rand.Reader),
	}
}

// request build a signed create request
func (f handlerFixture) request(
	t *testing.T, signer *auth.Signer, identity, topic, content string,
) posts.CreatePostRequest {
	req := posts.CreatePostRequest{
		Identity: identity, Topic: topic, Content: content, Authorizer: signer.Principal(),
	}
	token, err := signer.AuthorizeCreatePost(req.Intent(), f.clock.Now())
	assert.Nil(t, err)
	req.Authorization = token
	return req
}

func (f handlerFixture) newIdentity(t *testing.T) string {
	id, err := f.ids.Next()
	assert.Nil(t, err)
	return id
}

func TestCreatePostScenarios(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()
	fixture := newHandlerFixture(t)

	alice, err := auth.GenerateSigner(rand.Reader)
	assert.Nil(err)
	bob, err := auth.GenerateSigner(rand.Reader)
	assert.Nil(err)

	// Scenario 1
	{
		id := fixture.newIdentity(t)
		created, err := fixture.uut.CreatePost(
			utCtx, fixture.request(t, alice, id, "MY BRAIN", "ANCHORS GOT MY BRAIN FRIED!"),
		)
		assert.Nil(err)
		fetched, err := fixture.uut.GetPost(utCtx, id)
		assert.Nil(err)
		assert.Equal(created, fetched)
		assert.Equal(alice.Principal().String(), fetched.Author)
		assert.Equal("MY BRAIN", fetched.Topic)
		assert.Equal("ANCHORS GOT MY BRAIN FRIED!", fetched.Content)
		assert.Equal(int64(1700000000), fetched.CreatedAt)
	}

	// Scenario 2
	{
		id := fixture.newIdentity(t)
		_, err := fixture.uut.CreatePost(utCtx, fixture.request(t, alice, id, "", "gm"))
		assert.Nil(err)
		fetched, err := fixture.uut.GetPost(utCtx, id)
		assert.Nil(err)
		assert.Equal("", fetched.Topic)
		assert.Equal("gm", fetched.Content)
	}

	// Scenario 3
	{
		id := fixture.newIdentity(t)
		_, err := fixture.uut.CreatePost(utCtx, fixture.request(t, bob, id, "veganism", "Yay Tofu!"))
		assert.Nil(err)
		fetched, err := fixture.uut.GetPost(utCtx, id)
		assert.Nil(err)
		assert.Equal(bob.Principal().String(), fetched.Author)
		assert.NotEqual(alice.Principal().String(), fetched.Author)
	}

	// Scenario 4
	{
		id := fixture.newIdentity(t)
		_, err := fixture.uut.CreatePost(
			utCtx, fixture.request(t, alice, id, strings.Repeat("x", 51), "Hummus, am I right?"),
		)
		assert.ErrorIs(err, models.ErrTopicTooLong)
		assert.EqualError(err, "The provided topic should be 50 characters long maximum.")
		_, err = fixture.uut.GetPost(utCtx, id)
		assert.ErrorIs(err, models.ErrPostNotFound)
	}

	// Scenario 5
	{
		id := fixture.newIdentity(t)
		_, err := fixture.uut.CreatePost(
			utCtx, fixture.request(t, alice, id, "veganism", strings.Repeat("x", 281)),
		)
		assert.ErrorIs(err, models.ErrContentTooLong)
		assert.EqualError(err, "The provided content should be 280 characters long maximum.")
		_, err = fixture.uut.GetPost(utCtx, id)
		assert.ErrorIs(err, models.ErrPostNotFound)
	}
}

func TestCreatePostBoundaries(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()
	fixture := newHandlerFixture(t)

	alice, err := auth.GenerateSigner(rand.Reader)
	assert.Nil(err)

	// Exact limits are accepted
	_, err = fixture.uut.CreatePost(utCtx, fixture.request(
		t, alice, fixture.newIdentity(t), strings.Repeat("t", 50), strings.Repeat("c", 280),
	))
	assert.Nil(err)

	// Limits count characters, not bytes
	_, err = fixture.uut.CreatePost(utCtx, fixture.request(
		t, alice, fixture.newIdentity(t), strings.Repeat("é", 50), strings.Repeat("🍣", 280),
	))
	assert.Nil(err)
	_, err = fixture.uut.CreatePost(utCtx, fixture.request(
		t, alice, fixture.newIdentity(t), strings.Repeat("é", 51), "gm",
	))
	assert.ErrorIs(err, models.ErrTopicTooLong)

	// Topic is checked before content
	_, err = fixture.uut.CreatePost(utCtx, fixture.request(
		t, alice, fixture.newIdentity(t), strings.Repeat("t", 51), strings.Repeat("c", 281),
	))
	assert.ErrorIs(err, models.ErrTopicTooLong)

	// Empty content
	_, err = fixture.uut.CreatePost(utCtx, fixture.request(
		t, alice, fixture.newIdentity(t), "veganism", "",
	))
	assert.ErrorIs(err, models.ErrContentEmpty)

	// Malformed identity
	_, err = fixture.uut.CreatePost(utCtx, fixture.request(t, alice, "post-1", "veganism", "gm"))
	assert.ErrorIs(err, models.ErrInvalidIdentity)

	// Text which is not UTF-8
	for _, text := range []struct{ topic, content string }{
		{"veganism", "gm\xfe"},
		{"vegan\xff", "gm"},
	} {
		id := fixture.newIdentity(t)
		_, err = fixture.uut.CreatePost(utCtx, fixture.request(t, alice, id, text.topic, text.content))
		assert.ErrorIs(err, models.ErrInvalidText)
		_, err = fixture.uut.GetPost(utCtx, id)
		assert.ErrorIs(err, models.ErrPostNotFound)
	}

	// Length errors are reported ahead of a malformed authorizer
	req := posts.CreatePostRequest{
		Identity:   fixture.newIdentity(t),
		Topic:      strings.Repeat("x", 51),
		Content:    "Hummus, am I right?",
		Authorizer: auth.Principal("someone"),
	}
	_, err = fixture.uut.CreatePost(utCtx, req)
	assert.ErrorIs(err, models.ErrTopicTooLong)
	req.Topic = "hummus"
	_, err = fixture.uut.CreatePost(utCtx, req)
	assert.ErrorIs(err, models.ErrUnauthorized)
}

func TestCreatePostAuthorization(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()
	fixture := newHandlerFixture(t)

	alice, err := auth.GenerateSigner(rand.Reader)
	assert.Nil(err)
	bob, err := auth.GenerateSigner(rand.Reader)
	assert.Nil(err)

	// Claiming another principal as author
	{
		id := fixture.newIdentity(t)
		req := fixture.request(t, bob, id, "veganism", "Yay Tofu!")
		req.Authorizer = alice.Principal()
		_, err := fixture.uut.CreatePost(utCtx, req)
		assert.ErrorIs(err, models.ErrUnauthorized)
		_, err = fixture.uut.GetPost(utCtx, id)
		assert.ErrorIs(err, models.ErrPostNotFound)
	}

	// Replay against a different identity
	{
		id := fixture.newIdentity(t)
		req := fixture.request(t, alice, id, "veganism", "Yay Tofu!")
		_, err := fixture.uut.CreatePost(utCtx, req)
		assert.Nil(err)

		replay := req
		replay.Identity = fixture.newIdentity(t)
		_, err = fixture.uut.CreatePost(utCtx, replay)
		assert.ErrorIs(err, models.ErrUnauthorized)
		_, err = fixture.uut.GetPost(utCtx, replay.Identity)
		assert.ErrorIs(err, models.ErrPostNotFound)
	}

	// No token
	{
		req := fixture.request(t, alice, fixture.newIdentity(t), "veganism", "Yay Tofu!")
		req.Authorization = ""
		_, err := fixture.uut.CreatePost(utCtx, req)
		assert.ErrorIs(err, models.ErrUnauthorized)
	}
}

func TestCreatePostCollision(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()
	fixture := newHandlerFixture(t)

	alice, err := auth.GenerateSigner(rand.Reader)
	assert.Nil(err)
	bob, err := auth.GenerateSigner(rand.Reader)
	assert.Nil(err)

	id := fixture.newIdentity(t)
	original, err := fixture.uut.CreatePost(utCtx, fixture.request(t, alice, id, "", "gm"))
	assert.Nil(err)

	fixture.clock.Set(fixture.clock.Now().Add(time.Second * 5))
	_, err = fixture.uut.CreatePost(utCtx, fixture.request(t, bob, id, "", "gn"))
	assert.ErrorIs(err, models.ErrIdentityCollision)

	// Failure leaves the original untouched, and repeats identically
	_, err = fixture.uut.CreatePost(utCtx, fixture.request(t, bob, id, "", "gn"))
	assert.ErrorIs(err, models.ErrIdentityCollision)
	fetched, err := fixture.uut.GetPost(utCtx, id)
	assert.Nil(err)
	assert.Equal(original, fetched)
}

func TestCreatePostStampNeverMovesBack(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()
	fixture := newHandlerFixture(t)

	alice, err := auth.GenerateSigner(rand.Reader)
	assert.Nil(err)

	first, err := fixture.uut.CreatePost(
		utCtx, fixture.request(t, alice, fixture.newIdentity(t), "", "gm"),
	)
	assert.Nil(err)

	fixture.clock.Set(fixture.clock.Now().Add(-time.Second * 30))
	second, err := fixture.uut.CreatePost(
		utCtx, fixture.request(t, alice, fixture.newIdentity(t), "", "gn"),
	)
	assert.Nil(err)
	assert.GreaterOrEqual(second.CreatedAt, first.CreatedAt)
}

func TestCreatePostOrdering(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	mockRecords := mockstore.NewRecordStore(t)
	mockVerifier := mockauth.NewVerifier(t)
	clock := &testClock{now: time.Unix(1700000000, 0)}

	uut, err := posts.NewHandler(mockRecords, mockVerifier, clock)
	assert.Nil(err)

	principal := auth.Principal(strings.Repeat("0a", 32))
	id := strings.Repeat("1b", 32)

	// Length failures reach neither the verifier nor the store
	_, err = uut.CreatePost(utCtx, posts.CreatePostRequest{
		Identity: id, Topic: strings.Repeat("x", 51), Content: "gm", Authorizer: principal,
	})
	assert.ErrorIs(err, models.ErrTopicTooLong)

	// Authorization failures do not reach the store
	req := posts.CreatePostRequest{
		Identity: id, Topic: "veganism", Content: "Yay Tofu!", Authorizer: principal,
		Authorization: "token",
	}
	mockVerifier.On(
		"VerifyCreatePost", mock.AnythingOfType("context.backgroundCtx"), "token", req.Intent(),
	).Return(auth.Principal(""), models.ErrUnauthorized).Once()
	_, err = uut.CreatePost(utCtx, req)
	assert.ErrorIs(err, models.ErrUnauthorized)

	// Authorized requests are stamped and allocated
	mockVerifier.On(
		"VerifyCreatePost", mock.AnythingOfType("context.backgroundCtx"), "token", req.Intent(),
	).Return(principal, nil).Once()
	expected := models.Post{
		ID: id, Author: principal.String(), Topic: "veganism", Content: "Yay Tofu!",
		CreatedAt: 1700000000,
	}
	mockRecords.On(
		"Allocate", mock.AnythingOfType("context.backgroundCtx"), id, expected,
	).Return(nil).Once()
	created, err := uut.CreatePost(utCtx, req)
	assert.Nil(err)
	assert.Equal(expected, created)
}

func TestIdentityGenerator(t *testing.T) {
	assert := assert.New(t)

	uut := posts.NewIdentityGenerator(rand.Reader)
	seen := map[string]bool{}
	for i := 0; i < 64; i++ {
		id, err := uut.Next()
		assert.Nil(err)
		assert.True(models.IsValidPostIdentity(id))
		assert.False(seen[id])
		seen[id] = true
	}

	// Exhausted random source
	_, err := posts.NewIdentityGenerator(strings.NewReader(hex.EncodeToString([]byte("x")))).Next()
	assert.Error(err)
}
