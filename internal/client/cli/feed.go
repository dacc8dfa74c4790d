package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/iudanet/mediafeed/pkg/api"
)

func (c *Cli) runFeed(ctx context.Context, args []string) error {
	page, err := pageArg(args, 0)
	if err != nil {
		return err
	}

	result, err := c.media.FetchPage(ctx, page)
	if err != nil {
		return fmt.Errorf("failed to load feed: %w", err)
	}

	c.io.Printf("=== Feed, page %d ===\n", result.Page)
	c.io.Println()

	if len(result.Media) == 0 {
		c.io.Println("No media found.")
		return nil
	}

	for _, item := range result.Media {
		c.io.Printf("[%s] %-6s %s ♥ %d\n", item.ID, item.Type, item.DownloadURL, item.Likes)
	}

	if result.HasMore {
		c.io.Println()
		c.io.Printf("More: mediafeed feed %d\n", result.NextPage)
	}

	return nil
}

func (c *Cli) runShare(ctx context.Context, args []string) error {
	item, err := c.findItem(ctx, "share", args)
	if err != nil {
		return err
	}

	link, err := c.media.ShareLink(*item)
	if err != nil {
		return err
	}
	c.io.Println(link)
	return nil
}

func (c *Cli) runLike(ctx context.Context, args []string) error {
	item, err := c.findItem(ctx, "like", args)
	if err != nil {
		return err
	}

	if c.media.ToggleLike(item) {
		c.io.Printf("Liked %s ♥ %d\n", item.ID, item.Likes)
	} else {
		c.io.Printf("Unliked %s ♥ %d\n", item.ID, item.Likes)
	}
	return nil
}

// findItem загружает страницу из args[1] и ищет на ней элемент args[0]
func (c *Cli) findItem(ctx context.Context, command string, args []string) (*api.MediaItem, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("usage: mediafeed %s <id> [page]", command)
	}
	id := args[0]

	page, err := pageArg(args, 1)
	if err != nil {
		return nil, err
	}

	result, err := c.media.FetchPage(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to load feed: %w", err)
	}

	for i := range result.Media {
		if result.Media[i].ID == id {
			return &result.Media[i], nil
		}
	}
	return nil, fmt.Errorf("media %s not found on page %d", id, page)
}

// pageArg читает номер страницы из args[i], по умолчанию 0
func pageArg(args []string, i int) (int, error) {
	if len(args) <= i {
		return 0, nil
	}
	page, err := strconv.Atoi(args[i])
	if err != nil || page < 0 {
		return 0, fmt.Errorf("invalid page %q", args[i])
	}
	return page, nil
}
