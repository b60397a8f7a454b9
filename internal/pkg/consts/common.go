package consts

const (
	MimePrefixImage = "image/"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	DefaultFeaturedImage = "default-post.jpg"
	DefaultPageSize      = 10
	SearchLimit          = 20
	ExcerptLength        = 200
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextToken  = "token"
)
