package service

import (
	"strings"

	"github.com/jinzhu/copier"

	"github.com/rakeshranjan410/paperplane-api/internal/model"
)

// extractImageRefs walks every location of a question that can hold an image
// URL and returns the distinct, trimmed, non-empty references. Traversal
// order is fixed (legacy field, content images, option images, passage
// images, then each sub-question's content and options) so the result is
// deterministic.
func extractImageRefs(q *model.Question) []string {
	seen := make(map[string]struct{})
	var refs []string

	add := func(raw string) {
		ref := strings.TrimSpace(raw)
		if ref == "" {
			return
		}
		if _, ok := seen[ref]; ok {
			return
		}
		seen[ref] = struct{}{}
		refs = append(refs, ref)
	}

	add(q.ImageURL)
	if q.Content != nil {
		for _, img := range q.Content.Images {
			add(img)
		}
	}
	for _, opt := range q.Options {
		add(opt.Image)
	}
	if q.Passage != nil {
		for _, img := range q.Passage.Images {
			add(img)
		}
	}
	for _, sub := range q.Questions {
		if sub.Content != nil {
			for _, img := range sub.Content.Images {
				add(img)
			}
		}
		for _, opt := range sub.Options {
			add(opt.Image)
		}
	}

	return refs
}

// rewriteImageRefs returns a deep copy of q with every image reference whose
// trimmed value appears in refs replaced by the mapped value. Unmapped
// references are left byte-identical, so the same pass covers both non-image
// fields and references whose migration failed. The input question is never
// mutated.
func rewriteImageRefs(q *model.Question, refs map[string]string) (*model.Question, error) {
	out := &model.Question{}
	if err := copier.CopyWithOption(out, q, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return out, nil
	}

	replace := func(raw string) string {
		if mapped, ok := refs[strings.TrimSpace(raw)]; ok {
			return mapped
		}
		return raw
	}

	out.ImageURL = replace(out.ImageURL)
	if out.Content != nil {
		for i, img := range out.Content.Images {
			out.Content.Images[i] = replace(img)
		}
	}
	for i := range out.Options {
		out.Options[i].Image = replace(out.Options[i].Image)
	}
	if out.Passage != nil {
		for i, img := range out.Passage.Images {
			out.Passage.Images[i] = replace(img)
		}
	}
	for si := range out.Questions {
		sub := &out.Questions[si]
		if sub.Content != nil {
			for i, img := range sub.Content.Images {
				sub.Content.Images[i] = replace(img)
			}
		}
		for i := range sub.Options {
			sub.Options[i].Image = replace(sub.Options[i].Image)
		}
	}

	return out, nil
}
