package config

const (
	// MaxProjectNameLength is the maximum length for project names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxProjectNameLength = 255

	// MaxDescriptionLength is the maximum length for project descriptions.
	MaxDescriptionLength = 2000

	// MaxTitleLength applies to list titles and card titles.
	MaxTitleLength = 255

	// MaxContentLength is the maximum length for card content.
	MaxContentLength = 10000

	// MaxUsernameLength applies to the dev login.
	MaxUsernameLength = 64
)
