package compiler

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/afero"

	"github.com/goliatone/go-portfolio/internal/content"
	"github.com/goliatone/go-portfolio/internal/publish"
)

// compilePosts renders every posts/*.md file with an id into
// <api>/posts/<id>.json and writes <api>/posts.json ordered by date, newest
// first. Files without an id are left out.
func (r *run) compilePosts(ctx context.Context) (StepOutcome, error) {
	exists, err := afero.DirExists(r.deps.Source, postsDir)
	if err != nil {
		return failed(StepPosts, "stat posts directory", err), wrapStep(StepPosts, err)
	}
	if !exists {
		err := fmt.Errorf("%w: %s", ErrPostsDirMissing, postsDir)
		return failed(StepPosts, "posts directory not found", err), err
	}

	result, err := r.markdown.LoadDirectory(ctx, postsDir)
	if err != nil {
		return failed(StepPosts, "load posts", err), wrapStep(StepPosts, err)
	}

	for _, invalid := range result.Invalid {
		r.skip(StepPosts, invalid.Path, "", "invalid front matter: "+invalid.Err.Error())
	}

	posts := make([]content.Post, 0, len(result.Documents))
	sources := map[string]string{}
	written := 0
	for _, doc := range result.Documents {
		post, err := content.NewPost(doc.FrontMatter, doc.BodyHTML)
		if err != nil {
			reason := "missing id"
			if !errors.Is(err, content.ErrMissingID) {
				reason = err.Error()
			}
			r.skip(StepPosts, doc.Path, "", reason)
			continue
		}
		if previous, ok := sources[post.ID]; ok {
			r.warn(StepPosts, doc.Path, post.ID, "duplicate id, overrides "+previous)
		}
		sources[post.ID] = doc.Path

		target := r.apiPath("posts", post.ID+".json")
		if err := r.writer.WriteJSON(ctx, target, publish.CategoryPost, "post:"+post.ID, post); err != nil {
			return failed(StepPosts, "write post", err), wrapStep(StepPosts, err)
		}
		written++
		posts = append(posts, post)
		r.stepLogger(StepPosts, doc.Path, post.ID).Debug("compiler.posts.written", "output", target)
	}

	sortPosts(posts)
	if err := r.writer.WriteJSON(ctx, r.apiPath("posts.json"), publish.CategoryPostIndex, "", posts); err != nil {
		return failed(StepPosts, "write post index", err), wrapStep(StepPosts, err)
	}

	r.report.Posts = len(posts)
	return completed(StepPosts, written+1), nil
}

// sortPosts orders posts by date, newest first. Equal dates keep their
// relative order.
func sortPosts(posts []content.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date > posts[j].Date
	})
}
