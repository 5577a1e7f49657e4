package botcmds

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"slashkit/internal/storage"
	"slashkit/pkg/appcmd"
)

// queryTimeout bounds every storage call made from a command handler.
const queryTimeout = 5 * time.Second

// maxSuggestions matches the autocomplete response cap.
const maxSuggestions = 25

// TagCog bundles the tag commands. Every command in it is guild-only and
// shares one error handler that reports storage failures to the invoker.
type TagCog struct {
	store storage.Store
	root  *appcmd.Command
}

// tagKeyOptions is the option spec shared by get and remove.
type tagKeyOptions struct {
	Name string `description:"Tag name"`
}

// tagAddOptions is the option spec for adding a tag.
type tagAddOptions struct {
	Name string `description:"Tag name"`
	Body string `description:"Tag content"`
}

func NewTagCog(store storage.Store) *TagCog {
	cog := &TagCog{store: store}

	root := appcmd.NewSlash("tag", "Store and recall text snippets")

	appcmd.NewSlash("get", "Recall a tag").
		WithOptions(tagKeyOptions{}).
		WithAutocomplete("name", cog.suggestNames).
		WithHandler(cog.get).
		WithParent(root)

	appcmd.NewSlash("add", "Store a tag").
		WithOptions(tagAddOptions{}).
		WithHandler(cog.add).
		WithParent(root)

	manage := appcmd.NewSlash("manage", "Tag administration").
		AsGroup().
		WithParent(root)

	appcmd.NewSlash("remove", "Delete a tag").
		WithOptions(tagKeyOptions{}).
		WithAutocomplete("name", cog.suggestNames).
		WithHandler(cog.remove).
		WithParent(manage)

	appcmd.NewSlash("purge", "Delete every tag in this server").
		WithHandler(cog.purge).
		WithParent(manage)

	cog.root = root
	return cog
}

// Commands returns the cog's top-level commands.
func (t *TagCog) Commands() []*appcmd.Command {
	return []*appcmd.Command{t.root}
}

// CommandCheck keeps tag commands out of DMs.
func (t *TagCog) CommandCheck(c *appcmd.Context) (bool, error) {
	return guildOnly(c)
}

// OnCommandError reports the failure to the invoker when possible and
// always logs it.
func (t *TagCog) OnCommandError(c *appcmd.Context, err error) {
	slog.Error("Tag command failed", "command", c.Command.Name(), "error", err)
	if !c.Responded() {
		if respondErr := c.Respond("Something went wrong, try again later.", true); respondErr != nil {
			slog.Warn("Failed to report tag command error", "error", respondErr)
		}
	}
}

func (t *TagCog) get(c *appcmd.Context) error {
	name := c.Options.String("name")

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	tag, err := t.store.Tag(ctx, c.GuildID(), name)
	if errors.Is(err, storage.ErrNotFound) {
		return c.Respond(fmt.Sprintf("No tag named %q here.", name), true)
	}
	if err != nil {
		return fmt.Errorf("get tag %q: %w", name, err)
	}

	return c.Respond(tag.Body, false)
}

func (t *TagCog) add(c *appcmd.Context) error {
	tag := storage.Tag{
		GuildID:  c.GuildID(),
		Name:     c.Options.String("name"),
		Body:     c.Options.String("body"),
		AuthorID: c.Invoker().ID,
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if err := t.store.SaveTag(ctx, tag); err != nil {
		return fmt.Errorf("save tag %q: %w", tag.Name, err)
	}

	return c.Respond(fmt.Sprintf("Tag %q saved.", tag.Name), true)
}

func (t *TagCog) remove(c *appcmd.Context) error {
	name := c.Options.String("name")

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	err := t.store.DeleteTag(ctx, c.GuildID(), name)
	if errors.Is(err, storage.ErrNotFound) {
		return c.Respond(fmt.Sprintf("No tag named %q here.", name), true)
	}
	if err != nil {
		return fmt.Errorf("delete tag %q: %w", name, err)
	}

	return c.Respond(fmt.Sprintf("Tag %q removed.", name), true)
}

func (t *TagCog) purge(c *appcmd.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	n, err := t.store.PurgeTags(ctx, c.GuildID())
	if err != nil {
		return fmt.Errorf("purge tags: %w", err)
	}

	return c.Respond(fmt.Sprintf("Removed %d tags.", n), true)
}

func (t *TagCog) suggestNames(c *appcmd.Context, partial string) ([]any, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	names, err := t.store.ListTags(ctx, c.GuildID(), partial, maxSuggestions)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	out := make([]any, 0, len(names))
	for _, name := range names {
		out = append(out, name)
	}
	return out, nil
}
