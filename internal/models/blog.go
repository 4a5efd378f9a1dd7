package models

import "time"

// Blog represents a blog post. Author and PublicationDate are assigned by the
// server when the post is created and never change afterwards.
type Blog struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	PublicationDate time.Time `json:"publication_date"`
	Author          string    `json:"author"`
	AuthorUsername  string    `json:"author_username"`
}

// BlogInput carries the client-writable fields of a post. Nil means "not supplied".
type BlogInput struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// BlogFilter narrows a blog listing. UsernameSet distinguishes an explicit
// empty username, which matches no author, from no filter at all.
type BlogFilter struct {
	Username    string
	UsernameSet bool
}

// ByUsername returns a filter on the posts of one author.
func ByUsername(username string) BlogFilter {
	return BlogFilter{Username: username, UsernameSet: true}
}
