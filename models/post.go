package models

// Limits on post fields. These are part of the external contract.
const (
	// MaxTopicLength maximum number of characters in a post topic
	MaxTopicLength = 50
	// MaxContentLength maximum number of characters in a post content
	MaxContentLength = 280
	// MinContentLength minimum number of characters in a post content
	MinContentLength = 1
)

// Post one immutable post
type Post struct {
	// ID the post identity, chosen by the caller
	ID string `json:"id" validate:"required,post_identity"`

	// Author the principal which authorized the creation of the post
	Author string `json:"author" validate:"required,principal_id"`

	// Topic optional post topic
	Topic string `json:"topic" validate:"post_topic"`
	// Content post content
	Content string `json:"content" validate:"post_content"`

	// CreatedAt post creation timestamp, in seconds since epoch
	CreatedAt int64 `json:"created_at" validate:"required,gt=0"`
}

// PostBody the portion of a post which is sealed at rest
type PostBody struct {
	// Topic optional post topic
	Topic string `json:"topic" validate:"post_topic"`
	// Content post content
	Content string `json:"content" validate:"post_content"`
}

// SealedPost the persisted form of a post. The body is encrypted with a symmetric
// encryption key.
type SealedPost struct {
	// ID the post identity
	ID string `json:"id" gorm:"column:id;primaryKey;unique" validate:"required,post_identity"`

	// Author the principal which authorized the creation of the post
	Author string `json:"author" gorm:"column:author;not null;index" validate:"required,principal_id"`

	// EncKeyID the symmetric encryption key which sealed the body
	EncKeyID string `json:"enc_key_id" gorm:"column:enc_key_id;not null;" validate:"required,uuid_rfc4122"`

	// EncBody the sealed post body
	EncBody []byte `json:"enc_body" gorm:"column:enc_body;not null;" validate:"required"`
	// EncNonce the encryption nonce used
	EncNonce []byte `json:"enc_nonce" gorm:"column:enc_nonce;not null;" validate:"required"`

	// CreatedAt post creation timestamp, in seconds since epoch
	CreatedAt int64 `json:"created_at" gorm:"column:created_at;not null;autoCreateTime:false" validate:"required,gt=0"`
}
