package generator

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync/atomic"

	"google.golang.org/genai"
)

// Input describes one generation request: the target platform, the user's
// genres and tones, and the gathered trend context.
type Input struct {
	Platform   string
	Genres     []string
	HumorTypes []string
	Context    string
	Count      int
}

var (
	// ErrMissingAPIKey means no Gemini key was configured. Callers treat
	// this as a blocking configuration error.
	ErrMissingAPIKey = fmt.Errorf("generator: missing API key")
	// ErrNoCandidates means the model response parsed into zero posts. The
	// run fails; partial batches are never returned.
	ErrNoCandidates = fmt.Errorf("generator: no usable posts in model response")
)

// systemInstructions is the prompt pool. The entries say the same thing in
// different registers so repeated generations do not all sound alike.
var systemInstructions = []string{
	`
You are a social media ghostwriter. Given a platform, content genres, desired tones and a block of recent trend context, write ready-to-publish posts.
Rules:
1. Write exactly the number of posts requested, as a numbered list ("1.", "2.", ...), one post per item.
2. Each post must stand alone and fit the platform's conventions (hashtags and emoji for Instagram, brevity for Twitter).
3. Blend the requested tones naturally; never label or explain them.
4. Ground the posts in the trend context when it is available. If the context says no context is available, write from the genres alone.
5. Output only the numbered posts. No preamble, no commentary.
`,
	`
You ghostwrite social media posts. You receive a platform, the author's content genres, the tones to hit and recent trend context.
Rules:
1. Return exactly the requested number of posts as a numbered list ("1.", "2.", ...), one complete post per item.
2. Match the platform: hashtags and emoji suit Instagram, Twitter rewards brevity.
3. Mix the tones in without ever naming them.
4. Use the trend context where given; when it reports no context, lean on the genres instead.
5. Nothing before or after the numbered list.
`,
}

// Selector picks one index from an n-sized pool. The default selector walks
// pools round-robin; tests plug in a fixed one.
type Selector interface {
	Pick(n int) int
}

type roundRobin struct {
	seq uint32
}

func (r *roundRobin) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	v := atomic.AddUint32(&r.seq, 1)
	return (int(v) - 1) % n
}

// Generator writes post candidates with the Gemini API. Models and prompts
// are taken from pools so repeated generations spread load and rate limits
// across models and vary the house style.
type Generator struct {
	apiKey    string
	models    []string
	modelSel  Selector
	promptSel Selector
}

func New(apiKey string, models []string) *Generator {
	return &Generator{
		apiKey:    apiKey,
		models:    models,
		modelSel:  &roundRobin{},
		promptSel: &roundRobin{},
	}
}

// NewFromEnv builds a Generator from GEMINI_API_KEY and the given model pool.
func NewFromEnv(models []string) *Generator {
	return New(os.Getenv("GEMINI_API_KEY"), models)
}

// Configured reports whether an API key is present. Callers check this up
// front so a misconfigured deployment fails before any outbound call.
func (g *Generator) Configured() bool {
	return g.apiKey != ""
}

// nextModel returns the next model from the pool.
func (g *Generator) nextModel() string {
	if len(g.models) == 0 {
		return "gemini-1.5-flash-latest"
	}
	return g.models[g.modelSel.Pick(len(g.models))]
}

func (g *Generator) nextInstruction() string {
	return systemInstructions[g.promptSel.Pick(len(systemInstructions))]
}

// Generate produces up to in.Count post texts for the input.
func (g *Generator) Generate(ctx context.Context, in Input) ([]string, error) {
	if g.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if in.Count <= 0 {
		in.Count = 3
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: g.apiKey,
	})
	if err != nil {
		return nil, err
	}

	result, err := client.Models.GenerateContent(
		ctx,
		g.nextModel(),
		genai.Text(buildPrompt(in)),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: g.nextInstruction()}}},
		},
	)
	if err != nil {
		return nil, err
	}

	posts := ParseCandidates(result.Text(), in.Count)
	if len(posts) == 0 {
		return nil, ErrNoCandidates
	}
	return posts, nil
}

func buildPrompt(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Platform: %s\n", in.Platform)
	fmt.Fprintf(&b, "Genres: %s\n", strings.Join(in.Genres, ", "))
	fmt.Fprintf(&b, "Tones: %s\n", strings.Join(in.HumorTypes, ", "))
	fmt.Fprintf(&b, "Number of posts: %d\n", in.Count)
	b.WriteString("Trend context:\n")
	if strings.TrimSpace(in.Context) == "" {
		b.WriteString("No context available\n")
	} else {
		b.WriteString(in.Context)
		b.WriteString("\n")
	}
	return b.String()
}

// itemStart matches the "1." / "2)" list numbering the model is told to emit.
var itemStart = regexp.MustCompile(`^\s*\d+[.)]\s*`)

// ParseCandidates splits the model output into individual posts. A numbered
// line starts a new post and its numbering is stripped; unnumbered lines
// continue the current post. At most max posts are returned.
func ParseCandidates(text string, max int) []string {
	var posts []string
	var cur []string

	flush := func() {
		if len(cur) == 0 {
			return
		}
		post := strings.TrimSpace(strings.Join(cur, "\n"))
		cur = nil
		if post != "" {
			posts = append(posts, post)
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if loc := itemStart.FindStringIndex(line); loc != nil {
			flush()
			cur = append(cur, line[loc[1]:])
			continue
		}
		if len(cur) > 0 {
			cur = append(cur, line)
		} else if strings.TrimSpace(line) != "" {
			// Output without numbering still yields one post.
			cur = append(cur, line)
		}
	}
	flush()

	if max > 0 && len(posts) > max {
		posts = posts[:max]
	}
	return posts
}
