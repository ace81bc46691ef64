package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"autoplay/generator"
	"autoplay/imagesearch"
	"autoplay/internal/logger"
	"autoplay/models"
	"autoplay/search"
)

// Phase is one step of the generation pipeline. Phases always advance in
// order; the progress callback never sees a phase twice.
type Phase int

const (
	PhaseGathering Phase = iota
	PhaseWriting
	PhaseVisuals
	PhaseFinalizing
)

func (p Phase) String() string {
	switch p {
	case PhaseGathering:
		return "Gathering Ideas..."
	case PhaseWriting:
		return "Writing Posts..."
	case PhaseVisuals:
		return "Adding Visuals..."
	case PhaseFinalizing:
		return "Finalizing..."
	default:
		return "Unknown"
	}
}

// ProgressFunc receives each phase as the pipeline enters it.
type ProgressFunc func(Phase)

// TrendSearcher collects trending search results for a query.
type TrendSearcher interface {
	Search(ctx context.Context, query string) ([]search.Result, error)
}

// PostWriter drafts post texts from a generation input.
type PostWriter interface {
	Configured() bool
	Generate(ctx context.Context, in generator.Input) ([]string, error)
}

// ImageSearcher finds a stock photo URL for a query.
type ImageSearcher interface {
	SearchFirst(ctx context.Context, query string) (string, error)
}

// Mailer sends best-effort notification mail.
type Mailer interface {
	Enabled() bool
	Send(ctx context.Context, to, subject, html string) error
}

// userFinder is the slice of the user repository the pipeline needs.
type userFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// GenerationOptions tunes the pipeline. Zero values fall back to the
// defaults used by the frontend: 3 candidates, 3 results per genre.
type GenerationOptions struct {
	MaxCandidates      int
	ResultsPerGenre    int
	ImageStyles        []string
	FallbackImageQuery string
	PostBucket         string
}

func (o *GenerationOptions) applyDefaults() {
	if o.MaxCandidates <= 0 {
		o.MaxCandidates = 3
	}
	if o.ResultsPerGenre <= 0 {
		o.ResultsPerGenre = 3
	}
}

// GenerateParams is one generation request. An empty Genres selection falls
// back to the user's full profile genres.
type GenerateParams struct {
	Platform   string
	Genres     []string
	HumorTypes []string
	Image      *Upload
}

// GenerateResult carries the candidates of a finished run plus any
// non-fatal warnings collected along the way.
type GenerateResult struct {
	Candidates []models.GeneratedPost
	Warnings   []string
}

// GenerationService runs the four-phase post generation pipeline and keeps
// the resulting candidates in memory, one active set per user. A new run
// replaces the previous set; saving, publishing or sharing a candidate
// removes it from the set.
type GenerationService struct {
	searcher TrendSearcher
	writer   PostWriter
	images   ImageSearcher
	blobs    BlobUploader
	mail     Mailer
	users    userFinder
	settings *SettingsService
	posts    postStore
	opts     GenerationOptions

	styleSeq uint32

	mu         sync.Mutex
	candidates map[string][]*models.GeneratedPost
}

func NewGenerationService(
	searcher TrendSearcher,
	writer PostWriter,
	images ImageSearcher,
	blobs BlobUploader,
	mail Mailer,
	users userFinder,
	settings *SettingsService,
	posts postStore,
	opts GenerationOptions,
) *GenerationService {
	opts.applyDefaults()
	return &GenerationService{
		searcher:   searcher,
		writer:     writer,
		images:     images,
		blobs:      blobs,
		mail:       mail,
		users:      users,
		settings:   settings,
		posts:      posts,
		opts:       opts,
		candidates: make(map[string][]*models.GeneratedPost),
	}
}

// Generate runs the pipeline for one user. Cancelling ctx (the client
// dismissed the run or disconnected) aborts the pipeline between phases and
// leaves the user's previous candidate set untouched.
func (s *GenerationService) Generate(ctx context.Context, userID string, p GenerateParams, progress ProgressFunc) (*GenerateResult, error) {
	platform, err := models.ParsePlatform(p.Platform)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}
	humorTypes, err := models.ParseHumorTypes(p.HumorTypes)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}
	if !s.writer.Configured() {
		return nil, fmt.Errorf("%w: generation API key is not set", ErrNotConfigured)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	genres := p.Genres
	if len(genres) == 0 {
		genres = user.Genres
	}
	if err := models.ValidateGenres(genres); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	report := func(ph Phase) {
		if progress != nil {
			progress(ph)
		}
	}

	report(PhaseGathering)
	contextText, warnings, err := s.gatherContext(ctx, genres)
	if err != nil {
		if errors.Is(err, search.ErrMissingAPIKey) {
			return nil, fmt.Errorf("%w: %s", ErrNotConfigured, err.Error())
		}
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report(PhaseWriting)
	humorStrings := make([]string, 0, len(humorTypes))
	for _, h := range humorTypes {
		humorStrings = append(humorStrings, string(h))
	}
	texts, err := s.writer.Generate(ctx, generator.Input{
		Platform:   string(platform),
		Genres:     genres,
		HumorTypes: humorStrings,
		Context:    contextText,
		Count:      s.opts.MaxCandidates,
	})
	if err != nil {
		return nil, err
	}
	if len(texts) > s.opts.MaxCandidates {
		texts = texts[:s.opts.MaxCandidates]
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report(PhaseVisuals)
	imageURL, imageWarning, err := s.resolveImage(ctx, platform, genres, p.Image)
	if err != nil {
		return nil, err
	}
	if imageWarning != "" {
		warnings = append(warnings, imageWarning)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report(PhaseFinalizing)
	candidates := make([]*models.GeneratedPost, 0, len(texts))
	for _, text := range texts {
		candidates = append(candidates, &models.GeneratedPost{
			ID:       uuid.NewString(),
			Platform: platform,
			Content:  text,
			Image:    imageURL,
		})
	}

	s.mu.Lock()
	s.candidates[userID] = candidates
	s.mu.Unlock()

	s.notify(ctx, user, "Your posts are ready", fmt.Sprintf(
		"<p>Hi %s,</p><p>Your new post candidates are ready. Open Autoplay to review and publish them.</p>",
		user.Username,
	))

	result := &GenerateResult{Warnings: warnings}
	for _, c := range candidates {
		result.Candidates = append(result.Candidates, *c)
	}
	return result, nil
}

// gatherContext searches trending headlines per genre, concurrently, and
// assembles the "title: snippet" context block. A per-genre failure becomes
// a warning; a missing search API key aborts the run.
func (s *GenerationService) gatherContext(ctx context.Context, genres []string) (string, []string, error) {
	perGenre := make([][]string, len(genres))
	var warnMu sync.Mutex
	var warnings []string

	g, gctx := errgroup.WithContext(ctx)
	for i, genre := range genres {
		g.Go(func() error {
			results, err := s.searcher.Search(gctx, genre+" latest news")
			if err != nil {
				if errors.Is(err, search.ErrMissingAPIKey) {
					return err
				}
				logger.WarnWithFields("trend search failed", logger.Fields{
					"genre": genre,
					"error": err.Error(),
				})
				warnMu.Lock()
				warnings = append(warnings, fmt.Sprintf("trend search failed for %s", genre))
				warnMu.Unlock()
				return nil
			}
			if len(results) > s.opts.ResultsPerGenre {
				results = results[:s.opts.ResultsPerGenre]
			}
			lines := make([]string, 0, len(results))
			for _, r := range results {
				lines = append(lines, r.Title+": "+r.Snippet)
			}
			perGenre[i] = lines
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", nil, err
	}

	var all []string
	for _, lines := range perGenre {
		all = append(all, lines...)
	}
	contextText := strings.Join(all, "\n")
	if strings.TrimSpace(contextText) == "" {
		logger.WarnWithFields("no trend context gathered", logger.Fields{"genres": genres})
		warnings = append(warnings, "no trend context available")
		contextText = "No context available"
	}
	return contextText, warnings, nil
}

// resolveImage picks the image for this run. An uploaded file always wins and
// its upload failure aborts the run; otherwise Instagram runs get a stock
// photo lookup (with one generic fallback query when the styled one matches
// nothing) and Twitter runs get no image. Lookup failures downgrade to a
// warning and an imageless run.
func (s *GenerationService) resolveImage(ctx context.Context, platform models.Platform, genres []string, upload *Upload) (string, string, error) {
	if upload != nil && len(upload.Data) > 0 {
		objectPath := fmt.Sprintf("post-%d%s", time.Now().UnixMilli(), strings.ToLower(filepath.Ext(upload.Name)))
		imageURL, err := s.blobs.Upload(ctx, s.opts.PostBucket, objectPath, upload.ContentType, upload.Data)
		if err != nil {
			return "", "", fmt.Errorf("image upload: %w", err)
		}
		return imageURL, "", nil
	}

	if platform != models.PlatformInstagram {
		return "", "", nil
	}

	query := s.opts.FallbackImageQuery
	if len(genres) > 0 {
		query = genres[0]
	}
	if style := s.nextStyle(); style != "" {
		query = query + " " + style
	}

	imageURL, err := s.images.SearchFirst(ctx, query)
	if errors.Is(err, imagesearch.ErrNoResults) && s.opts.FallbackImageQuery != "" && query != s.opts.FallbackImageQuery {
		imageURL, err = s.images.SearchFirst(ctx, s.opts.FallbackImageQuery)
	}
	if err != nil {
		if errors.Is(err, imagesearch.ErrMissingAccessKey) {
			logger.WarnWithFields("image search not configured", logger.Fields{"query": query})
			return "", "image search not configured", nil
		}
		logger.WarnWithFields("image search failed", logger.Fields{
			"query": query,
			"error": err.Error(),
		})
		return "", "image search failed", nil
	}
	return imageURL, "", nil
}

// nextStyle rotates through the configured photo styles.
func (s *GenerationService) nextStyle() string {
	if len(s.opts.ImageStyles) == 0 {
		return ""
	}
	n := atomic.AddUint32(&s.styleSeq, 1)
	return s.opts.ImageStyles[(int(n)-1)%len(s.opts.ImageStyles)]
}

// notify sends a best-effort mail when the user opted in. Failures are
// logged and swallowed.
func (s *GenerationService) notify(ctx context.Context, user *models.User, subject, html string) {
	if s.mail == nil || !s.mail.Enabled() || user.Email == "" {
		return
	}
	settings, err := s.settings.Get(ctx, user.ID)
	if err != nil {
		logger.WarnWithFields("settings lookup for notification failed", logger.Fields{
			"user_id": user.ID,
			"error":   err.Error(),
		})
		return
	}
	if !settings.EmailNotifications {
		return
	}

	if err := s.mail.Send(ctx, user.Email, subject, html); err != nil {
		logger.WarnWithFields("notification email failed", logger.Fields{
			"user_id": user.ID,
			"subject": subject,
			"error":   err.Error(),
		})
	}
}

func (s *GenerationService) notifyByID(ctx context.Context, userID, subject, html string) {
	if s.mail == nil || !s.mail.Enabled() {
		return
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return
	}
	s.notify(ctx, user, subject, html)
}

func (s *GenerationService) findCandidate(userID, candidateID string) *models.GeneratedPost {
	for _, c := range s.candidates[userID] {
		if c.ID == candidateID {
			return c
		}
	}
	return nil
}

func (s *GenerationService) removeCandidate(userID, candidateID string) {
	kept := s.candidates[userID][:0]
	for _, c := range s.candidates[userID] {
		if c.ID != candidateID {
			kept = append(kept, c)
		}
	}
	s.candidates[userID] = kept
}

// Candidates returns the user's active candidate set.
func (s *GenerationService) Candidates(userID string) []models.GeneratedPost {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.GeneratedPost, 0, len(s.candidates[userID]))
	for _, c := range s.candidates[userID] {
		out = append(out, *c)
	}
	return out
}

// GetCandidate returns one candidate from the user's active set.
func (s *GenerationService) GetCandidate(userID, candidateID string) (*models.GeneratedPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findCandidate(userID, candidateID)
	if c == nil {
		return nil, ErrNotFound
	}
	copied := *c
	return &copied, nil
}

// EditCandidate replaces a candidate's content in place.
func (s *GenerationService) EditCandidate(userID, candidateID, content string) (*models.GeneratedPost, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findCandidate(userID, candidateID)
	if c == nil {
		return nil, ErrNotFound
	}
	c.Content = content
	copied := *c
	return &copied, nil
}

// DiscardCandidates drops the user's active candidate set.
func (s *GenerationService) DiscardCandidates(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.candidates, userID)
}

// persistCandidate stores a candidate as a post row and removes it from the
// active set on success.
func (s *GenerationService) persistCandidate(ctx context.Context, userID, candidateID string, isDraft bool) (*models.Post, error) {
	candidate, err := s.GetCandidate(userID, candidateID)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.Insert(ctx, &models.Post{
		UserID:   userID,
		Platform: candidate.Platform,
		Content:  candidate.Content,
		Image:    candidate.Image,
		IsDraft:  isDraft,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.removeCandidate(userID, candidateID)
	s.mu.Unlock()

	if isDraft {
		s.notifyByID(ctx, userID, "Draft saved", "<p>Your draft was saved. Find it under Drafts when you are ready to publish.</p>")
	} else {
		s.notifyByID(ctx, userID, "Post published", "<p>Your post went out. It is now in your history.</p>")
	}

	return post, nil
}

// SaveDraft persists a candidate as a draft.
func (s *GenerationService) SaveDraft(ctx context.Context, userID, candidateID string) (*models.Post, error) {
	return s.persistCandidate(ctx, userID, candidateID, true)
}

// PublishCandidate persists a candidate as a published post.
func (s *GenerationService) PublishCandidate(ctx context.Context, userID, candidateID string) (*models.Post, error) {
	return s.persistCandidate(ctx, userID, candidateID, false)
}

// ShareResult tells the client how to hand the post to the platform.
type ShareResult struct {
	Method  string
	URL     string
	Content string
	Image   string
	Post    *models.Post
}

// ShareCandidate persists a candidate as published and returns the share
// instructions for its platform. Twitter gets an intent URL; Instagram has
// no web intent, so the client copies the content to the clipboard.
func (s *GenerationService) ShareCandidate(ctx context.Context, userID, candidateID string) (*ShareResult, error) {
	post, err := s.persistCandidate(ctx, userID, candidateID, false)
	if err != nil {
		return nil, err
	}

	result := &ShareResult{
		Content: post.Content,
		Image:   post.Image,
		Post:    post,
	}
	switch post.Platform {
	case models.PlatformTwitter:
		result.Method = "intent"
		result.URL = "https://twitter.com/intent/tweet?text=" + url.QueryEscape(post.Content)
	default:
		// Instagram has no web intent; the client copies the content and
		// opens the site.
		result.Method = "clipboard"
		result.URL = "https://www.instagram.com/"
	}
	return result, nil
}
