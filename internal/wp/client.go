package wp

import "context"

// Client is the capability surface the publish core needs from a remote
// backend. Implementations own the wire format (REST, XML-RPC); the core
// never sees it.
type Client interface {
	// ValidateCredentials checks auth against the backend without side
	// effects. A false result means the backend rejected the credentials;
	// an error means the check itself could not be performed.
	ValidateCredentials(ctx context.Context, auth Auth) (bool, error)

	// PublishPost creates a new post, or updates the one named by
	// params.PostURL when it is non-empty.
	PublishPost(ctx context.Context, params PostParams, auth Auth) (*PostResult, error)

	// ListCategories returns the site's full category list.
	ListCategories(ctx context.Context, auth Auth) ([]Term, error)

	// ListPostTypes returns the site's available content types.
	ListPostTypes(ctx context.Context, auth Auth) ([]PostType, error)

	// ResolveTag returns the tag with the given name, creating it on the
	// backend if it does not exist yet.
	ResolveTag(ctx context.Context, name string, auth Auth) (*Term, error)

	// UploadMedia stores a binary resource on the backend and returns its
	// public URL.
	UploadMedia(ctx context.Context, file MediaFile, auth Auth) (*MediaResult, error)
}
