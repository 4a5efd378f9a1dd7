package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/chroniclex-be/internal/auth"
	"github.com/isdelr/chroniclex-be/internal/models"
	"github.com/isdelr/chroniclex-be/internal/repository"
	"github.com/rs/zerolog/log"
)

// BlogServiceProvider defines the interface for blog services.
type BlogServiceProvider interface {
	List(ctx context.Context, actor *auth.Actor, filter models.BlogFilter) ([]models.Blog, error)
	Get(ctx context.Context, actor *auth.Actor, id string) (models.Blog, error)
	Create(ctx context.Context, actor *auth.Actor, input models.BlogInput) (models.Blog, error)
	Update(ctx context.Context, actor *auth.Actor, id string, input models.BlogInput) (models.Blog, error)
	PartialUpdate(ctx context.Context, actor *auth.Actor, id string, input models.BlogInput) (models.Blog, error)
	Delete(ctx context.Context, actor *auth.Actor, id string) error
}

// BlogService provides business logic for blog posts.
type BlogService struct {
	blogs repository.BlogRepository
	now   func() time.Time
}

// NewBlogService creates a new BlogService.
func NewBlogService(blogs repository.BlogRepository) *BlogService {
	return &BlogService{blogs: blogs, now: time.Now}
}

// List returns all posts newest first, optionally only those of one author.
func (s *BlogService) List(ctx context.Context, actor *auth.Actor, filter models.BlogFilter) ([]models.Blog, error) {
	if err := auth.Authorize(actor, auth.ActionList, ""); err != nil {
		return nil, err
	}
	return s.blogs.List(ctx, filter)
}

// Get retrieves a single post.
func (s *BlogService) Get(ctx context.Context, actor *auth.Actor, id string) (models.Blog, error) {
	if err := auth.Authorize(actor, auth.ActionRetrieve, ""); err != nil {
		return models.Blog{}, err
	}
	return s.blogs.GetByID(ctx, id)
}

// Create stores a new post authored by actor. The author and publication date
// are always assigned here.
func (s *BlogService) Create(ctx context.Context, actor *auth.Actor, input models.BlogInput) (models.Blog, error) {
	if err := auth.Authorize(actor, auth.ActionCreate, ""); err != nil {
		return models.Blog{}, err
	}
	if err := validateFull(input); err != nil {
		return models.Blog{}, err
	}

	blog := models.Blog{
		ID:              uuid.New().String(),
		Title:           *input.Title,
		Content:         *input.Content,
		PublicationDate: s.now().UTC(),
		Author:          actor.ID,
		AuthorUsername:  actor.Username,
	}
	if err := s.blogs.Create(ctx, blog); err != nil {
		return models.Blog{}, err
	}

	log.Info().Str("blog_id", blog.ID).Str("author_id", actor.ID).Msg("Blog created")
	return s.blogs.GetByID(ctx, blog.ID)
}

// Update replaces the title and content of a post. Both fields are required.
func (s *BlogService) Update(ctx context.Context, actor *auth.Actor, id string, input models.BlogInput) (models.Blog, error) {
	return s.update(ctx, actor, auth.ActionUpdate, id, input)
}

// PartialUpdate changes whichever of title and content are supplied.
func (s *BlogService) PartialUpdate(ctx context.Context, actor *auth.Actor, id string, input models.BlogInput) (models.Blog, error) {
	return s.update(ctx, actor, auth.ActionPartialUpdate, id, input)
}

func (s *BlogService) update(ctx context.Context, actor *auth.Actor, action auth.Action, id string, input models.BlogInput) (models.Blog, error) {
	blog, err := s.authorizedBlog(ctx, actor, action, id)
	if err != nil {
		return models.Blog{}, err
	}

	if action == auth.ActionUpdate {
		err = validateFull(input)
	} else {
		err = validatePartial(input)
	}
	if err != nil {
		return models.Blog{}, err
	}

	if input.Title != nil {
		blog.Title = *input.Title
	}
	if input.Content != nil {
		blog.Content = *input.Content
	}
	if err := s.blogs.Update(ctx, blog); err != nil {
		return models.Blog{}, err
	}

	log.Info().Str("blog_id", id).Str("action", action.String()).Msg("Blog updated")
	return blog, nil
}

// Delete removes a post. Only its author may do so.
func (s *BlogService) Delete(ctx context.Context, actor *auth.Actor, id string) error {
	if _, err := s.authorizedBlog(ctx, actor, auth.ActionDelete, id); err != nil {
		return err
	}
	if err := s.blogs.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Str("blog_id", id).Str("author_id", actor.ID).Msg("Blog deleted")
	return nil
}

// authorizedBlog loads a post for a mutating action. Anonymous callers are
// rejected before the lookup, so they get 401 whether or not the post exists.
func (s *BlogService) authorizedBlog(ctx context.Context, actor *auth.Actor, action auth.Action, id string) (models.Blog, error) {
	if !actor.Authenticated() {
		return models.Blog{}, auth.Authorize(actor, action, "")
	}

	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return models.Blog{}, err
	}
	if err := auth.Authorize(actor, action, blog.Author); err != nil {
		log.Warn().Str("blog_id", id).Str("actor_id", actor.ID).Str("action", action.String()).Msg("Blog mutation denied")
		return models.Blog{}, err
	}
	return blog, nil
}

func validateFull(input models.BlogInput) error {
	if input.Title == nil {
		return validationError("title is required")
	}
	if input.Content == nil {
		return validationError("content is required")
	}
	return validatePartial(input)
}

func validatePartial(input models.BlogInput) error {
	if input.Title != nil {
		if err := validateTitle(*input.Title); err != nil {
			return err
		}
	}
	if input.Content != nil {
		if err := validateContent(*input.Content); err != nil {
			return err
		}
	}
	return nil
}

