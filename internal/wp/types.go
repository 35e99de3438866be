package wp

import "fmt"

// Well-known WordPress defaults. Every site ships with category 1
// ("Uncategorized") and the built-in "post" type.
const (
	DefaultPostType     = "post"
	DefaultCategoryID   = 1
	DefaultCategoryName = "Uncategorized"
)

// PostStatus is the publish status of a remote post.
type PostStatus string

const (
	StatusPublish PostStatus = "publish"
	StatusDraft   PostStatus = "draft"
	StatusPrivate PostStatus = "private"
)

// CommentPolicy controls whether readers may comment on a post.
type CommentPolicy string

const (
	CommentsOpen   CommentPolicy = "open"
	CommentsClosed CommentPolicy = "closed"
)

// Auth carries credentials for the remote backend.
type Auth struct {
	Username string
	Password string
}

// Empty reports whether no credentials are present.
func (a Auth) Empty() bool {
	return a.Username == "" && a.Password == ""
}

// Term is a remote taxonomy entry (category or tag).
type Term struct {
	ID   int
	Name string
}

// PostType describes a remote content type.
type PostType struct {
	Slug  string
	Label string
}

// PostParams is the in-flight request for a publish or update call.
// Built fresh per attempt; never persisted.
type PostParams struct {
	Title       string
	Body        string
	Status      PostStatus
	Comments    CommentPolicy
	PostType    string
	CategoryIDs []int
	TagIDs      []int
	Profile     string

	// PostURL is the canonical URL of the existing remote post. Non-empty
	// means the call is an update; empty means create.
	PostURL string
}

// PostResult is the server's answer to a publish or update call.
type PostResult struct {
	PostID      string
	URL         string
	CategoryIDs []int
}

// MediaFile is a binary resource staged for upload.
type MediaFile struct {
	Name     string
	MimeType string
	Data     []byte
}

// MediaResult is the server's answer to a media upload.
type MediaResult struct {
	URL string
}

// Error is a server-reported failure carrying the backend's error code
// and message. Transports return *Error for rejections the server
// explained; plain errors cover everything else.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
