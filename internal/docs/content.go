package docs

var topics = []Topic{
	{
		Name:    "frontmatter",
		Title:   "Front-matter keys",
		Summary: "What owp stores in a note's metadata block",
		Content: `
# Front-matter keys

owp tracks a note's publish relationship in its YAML front-matter block.
Keys it does not own are preserved untouched.

  remote_url     Canonical link to the published post. Its presence makes
                 every later publish an update; owp never replaces it.
  profile_name   Which profile produced the last publish.
  post_type      Remote content type. Defaults to "post".
  categories     Category selection. Stored as names; numeric IDs are
                 accepted as legacy input and converted to names on the
                 next successful publish.
  tags           Tag names. An explicitly empty list clears the post's
                 tags on the next publish; a missing key leaves them
                 alone.
  title          Overrides the note's filename as the post title.

Example:

  ---
  title: Why I switched editors
  remote_url: https://blog.example.com/?p=421
  profile_name: blog
  categories:
    - Tools
    - Opinions
  tags:
    - editors
  ---
`,
	},
	{
		Name:    "profiles",
		Title:   "Profiles",
		Summary: "Configuring remote targets in .owp/config.yaml",
		Content: `
# Profiles

A profile is one named remote target. owp looks for .owp/config.yaml by
walking up from the current directory.

  default-profile: blog
  profiles:
    - name: blog
      endpoint: https://blog.example.com
      api: rest                  # rest or xmlrpc
      username: author
      default-post-type: post
      default-status: publish    # publish, draft, or private
      default-comments: open     # open or closed
      require-login: true
      replace-media-links: true

With replace-media-links enabled, uploaded image references are rewritten
in the note itself, not just in the copy sent to the server.

owp remembers each profile's most recent category selection under
last-categories and seeds the next publish with it.
`,
	},
	{
		Name:    "publishing",
		Title:   "Publishing",
		Summary: "What happens on owp publish",
		Content: `
# Publishing

owp publish <note> runs one attempt:

  1. Authenticate (stored credentials are validated; you are prompted
     again if the server rejects them).
  2. Classify: a note whose front matter carries remote_url is updated in
     place; anything else creates a new post after an interactive
     category/type selection. Cancelling the selection aborts with no
     remote call and no metadata change.
  3. Resolve categories and tags. Unmatched category names fall back to
     "Uncategorized" with a warning; tag resolution failures are dropped
     individually.
  4. Upload local images and rewrite their references. A failed upload
     warns and leaves that reference alone.
  5. Send the post, then merge the result into the front matter.

Only one publish can run at a time, across all notes. Attempt history is
kept in .owp/journal.db; see owp history.
`,
	},
}
