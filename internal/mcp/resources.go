// ABOUTME: MCP resource definitions
// ABOUTME: Provides a read-only snapshot of every collection for AI agents

package mcp

import (
	"context"
	"encoding/json"

	"github.com/harper/reel/internal/stores"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const collectionsURI = "reel://collections"

// CollectionSummary describes one collection in the snapshot resource.
type CollectionSummary struct {
	Count    int           `json:"count"`
	Degraded bool          `json:"degraded,omitempty"`
	Entries  []EntryOutput `json:"entries"`
}

// CollectionsSnapshot is the body of the reel://collections resource.
type CollectionsSnapshot struct {
	Collections   map[string]CollectionSummary `json:"collections"`
	AverageRating float64                      `json:"average_rating"`
}

func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		Name:        collectionsURI,
		Description: "Every collection (liked, watched, wishlist, ratings) with its entries",
		URI:         collectionsURI,
		MIMEType:    "application/json",
	}, s.handleCollectionsResource)
}

func (s *Server) snapshot() CollectionsSnapshot {
	status := s.reg.Status()
	out := CollectionsSnapshot{
		Collections:   make(map[string]CollectionSummary, len(status)),
		AverageRating: s.reg.Ratings().Average(),
	}
	for _, name := range stores.Names() {
		entries, _ := s.entries(name)
		out.Collections[name] = CollectionSummary{
			Count:    len(entries),
			Degraded: status[name].Degraded(),
			Entries:  entries,
		}
	}
	return out
}

func (s *Server) handleCollectionsResource(_ context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	s.refresh()
	jsonBytes, _ := json.MarshalIndent(s.snapshot(), "", "  ") //nolint:errchkjson // output is always serializable

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      collectionsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		},
	}, nil
}
