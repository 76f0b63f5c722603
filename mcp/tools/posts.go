package tools

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/agrisage/agroserve/internal/appconfig"
	"github.com/agrisage/agroserve/internal/util"
)

// post mirrors one JSONPlaceholder blog post.
type post struct {
	UserID int    `json:"userId"`
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// postExcerptRunes is how much of a post body each excerpt keeps.
const postExcerptRunes = 100

// PlaceholderPostsDefinition describes the blog-post tool. The declared
// limit bounds are advisory; the handler truncates client-side and does not
// reject out-of-range values.
func PlaceholderPostsDefinition() Definition {
	return Definition{
		Name:        PlaceholderPostsName,
		Description: "Fetch mock blog posts from JSONPlaceholder API. Use this when users ask about posts, blogs, or articles.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"limit": map[string]any{
					"type":        "integer",
					"description": "Number of posts to fetch (1-100)",
					"minimum":     1,
					"maximum":     100,
					"default":     5,
				},
			},
			"required": []string{},
		},
	}
}

// PlaceholderPostsHandler returns the handler for the blog-post tool.
func PlaceholderPostsHandler(cfg *appconfig.Config) Handler {
	return func(args map[string]any) ([]ContentPart, error) {
		limit := intArg(args, "limit", 5)

		posts, err := fetchPosts(cfg)
		if err != nil {
			return nil, fmt.Errorf("Error fetching posts: %v", err)
		}

		if limit < 0 {
			limit = 0
		}
		if limit > len(posts) {
			limit = len(posts)
		}
		selected := posts[:limit]

		blocks := make([]string, 0, len(selected))
		for _, p := range selected {
			blocks = append(blocks, formatPost(p))
		}
		result := fmt.Sprintf("📚 Fetched %d blog posts:\n\n", len(selected)) + strings.Join(blocks, "\n\n")
		return Text(result), nil
	}
}

// formatPost renders one excerpt block. The ellipsis is appended even when
// the body is shorter than the excerpt window.
func formatPost(p post) string {
	return fmt.Sprintf("📝 Post #%d: %s\n%s...", p.ID, p.Title, util.Excerpt(p.Body, postExcerptRunes))
}

func fetchPosts(cfg *appconfig.Config) ([]post, error) {
	client := &http.Client{Timeout: cfg.PostsTimeoutDuration()}
	defer client.CloseIdleConnections()

	resp, err := client.Get(cfg.PostsEndpoint() + "/posts")
	if err != nil {
		return nil, fmt.Errorf("posts request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("posts service returned status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read posts response: %v", err)
	}

	var posts []post
	if err := json.Unmarshal(body, &posts); err != nil {
		return nil, fmt.Errorf("failed to parse posts JSON: %v", err)
	}
	return posts, nil
}
