package resource

import (
	"github.com/nvellon/hal"
)

// Resource is one record of the api, rendered as a hal resource with its
// own `self` link.
type Resource interface {
	LinkSelf() string
	Resource() *hal.Resource
	GetMap() hal.Entry
}

// ResourceList is a page of records. `next` and `prev` are set only when
// the page has records; `page` is the templated link of the list itself.
type ResourceList struct {
	Resources []Resource
	SelfLink  string
	NextLink  string
	PrevLink  string
	PageLink  string
}

func NewResourceList(list []Resource, selfLink, nextLink, prevLink, pageLink string) *ResourceList {
	return &ResourceList{
		Resources: list,
		SelfLink:  selfLink,
		NextLink:  nextLink,
		PrevLink:  prevLink,
		PageLink:  pageLink,
	}
}

func (l ResourceList) Resource() *hal.Resource {
	rl := hal.NewResource(l, l.LinkSelf())

	rCollection := hal.ResourceCollection{}
	for _, r := range l.Resources {
		rCollection = append(rCollection, r.Resource())
	}
	rl.EmbedCollection("records", rCollection)

	for rel, href := range map[string]string{"prev": l.PrevLink, "next": l.NextLink} {
		if href != "" {
			rl.AddLink(hal.Relation(rel), hal.NewLink(href))
		}
	}
	if l.PageLink != "" {
		rl.AddLink("page", hal.NewLink(l.PageLink, hal.LinkAttr{"templated": true}))
	}

	return rl
}

func (l ResourceList) LinkSelf() string {
	return l.SelfLink
}

// GetMap gives the number of the embedded records.
func (l ResourceList) GetMap() hal.Entry {
	return hal.Entry{
		"count": len(l.Resources),
	}
}
