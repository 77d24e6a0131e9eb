// ABOUTME: MCP tool definitions and handlers
// ABOUTME: Lets AI agents add, remove, check, rate, list and search collection entries

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harper/reel/internal/models"
	"github.com/harper/reel/internal/search"
	"github.com/harper/reel/internal/stores"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	s.registerAddTool()
	s.registerRemoveTool()
	s.registerCheckTool()
	s.registerSetRatingTool()
	s.registerGetRatingTool()
	s.registerListTool()
	s.registerSearchTool()
}

var (
	idProperty = map[string]interface{}{
		"type":        "integer",
		"description": "Catalogue id of the movie or TV show",
	}
	typeProperty = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"movie", "tv"},
		"description": "Media type (default: movie)",
	}
)

// EntryOutput is one collection entry.
type EntryOutput struct {
	Collection string   `json:"collection"`
	ID         int64    `json:"id"`
	Type       string   `json:"type"`
	Title      string   `json:"title"`
	PosterPath *string  `json:"poster_path,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
	At         string   `json:"at,omitempty"`
}

func membershipOutput(rel stores.Relation, rec models.MediaRecord) EntryOutput {
	return EntryOutput{
		Collection: string(rel),
		ID:         int64(rec.ID),
		Type:       string(rec.Type),
		Title:      rec.Title,
		PosterPath: rec.PosterPath,
		At:         rec.At.String(),
	}
}

func ratingOutput(rec models.RatingRecord) EntryOutput {
	rating := rec.Rating
	return EntryOutput{
		Collection: stores.RatingsName,
		ID:         int64(rec.ID),
		Type:       string(rec.Type),
		Title:      rec.Title,
		Rating:     &rating,
		At:         rec.RatedAt.String(),
	}
}

// refresh picks up writes made by other processes (the CLI) since the last call.
func (s *Server) refresh() {
	s.reg.Reload()
}

func jsonResult(v any) *mcp.CallToolResult {
	jsonBytes, _ := json.MarshalIndent(v, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}
}

func parseKey(id int64, mediaType string) (models.MediaID, models.MediaType, error) {
	if id <= 0 {
		return 0, "", fmt.Errorf("id must be positive, got %d", id)
	}
	t, err := models.ParseMediaType(mediaType)
	if err != nil {
		return 0, "", err
	}
	return models.MediaID(id), t, nil
}

// AddInput defines input for add_to_collection tool.
type AddInput struct {
	Collection   string `json:"collection"`
	ID           int64  `json:"id"`
	Type         string `json:"type,omitempty"`
	Title        string `json:"title,omitempty"`
	Name         string `json:"name,omitempty"`
	PosterPath   string `json:"poster_path,omitempty"`
	BackdropPath string `json:"backdrop_path,omitempty"`
}

func (s *Server) registerAddTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "add_to_collection",
		Description: "Add a movie or TV show to the liked, watched or wishlist collection. Adding an entry that is already present changes nothing.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"collection": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"liked", "watched", "wishlist"},
					"description": "Collection to add to",
				},
				"id":   idProperty,
				"type": typeProperty,
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Display title of a movie",
				},
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Display name of a TV show, used when title is empty",
				},
				"poster_path": map[string]interface{}{
					"type":        "string",
					"description": "Optional poster image path",
				},
				"backdrop_path": map[string]interface{}{
					"type":        "string",
					"description": "Optional backdrop image path, used when poster_path is empty",
				},
			},
			"required": []string{"collection", "id"},
		},
	}, s.handleAdd)
}

func (s *Server) handleAdd(_ context.Context, _ *mcp.CallToolRequest, input AddInput) (*mcp.CallToolResult, EntryOutput, error) {
	s.refresh()
	rel, err := stores.ParseRelation(input.Collection)
	if err != nil {
		return nil, EntryOutput{}, err
	}
	id, t, err := parseKey(input.ID, input.Type)
	if err != nil {
		return nil, EntryOutput{}, err
	}

	store, _ := s.reg.Membership(rel)
	store.Add(&models.MediaItem{
		ID:           id,
		Title:        input.Title,
		Name:         input.Name,
		PosterPath:   input.PosterPath,
		BackdropPath: input.BackdropPath,
	}, t)

	rec, ok := store.Get(id, t)
	if !ok {
		return nil, EntryOutput{}, fmt.Errorf("failed to add %s to %s", models.NewKey(id, t), rel)
	}
	s.logger.Debug().Str("collection", string(rel)).Stringer("key", rec.Key()).Msg("added")

	output := membershipOutput(rel, rec)
	return jsonResult(output), output, nil
}

// RemoveInput defines input for remove_from_collection tool.
type RemoveInput struct {
	Collection string `json:"collection"`
	ID         int64  `json:"id"`
	Type       string `json:"type,omitempty"`
}

// RemoveOutput defines output for remove_from_collection tool.
type RemoveOutput struct {
	Collection string `json:"collection"`
	ID         int64  `json:"id"`
	Type       string `json:"type"`
	Removed    bool   `json:"removed"`
}

func (s *Server) registerRemoveTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "remove_from_collection",
		Description: "Remove a movie or TV show from a collection, or drop its rating when collection is 'ratings'.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"collection": map[string]interface{}{
					"type":        "string",
					"enum":        stores.Names(),
					"description": "Collection to remove from",
				},
				"id":   idProperty,
				"type": typeProperty,
			},
			"required": []string{"collection", "id"},
		},
	}, s.handleRemove)
}

func (s *Server) handleRemove(_ context.Context, _ *mcp.CallToolRequest, input RemoveInput) (*mcp.CallToolResult, RemoveOutput, error) {
	s.refresh()
	id, t, err := parseKey(input.ID, input.Type)
	if err != nil {
		return nil, RemoveOutput{}, err
	}

	output := RemoveOutput{Collection: input.Collection, ID: input.ID, Type: string(t)}
	if input.Collection == stores.RatingsName {
		_, output.Removed = s.reg.Ratings().Lookup(id, t)
		s.reg.Ratings().RemoveRating(id, t)
		return jsonResult(output), output, nil
	}

	rel, err := stores.ParseRelation(input.Collection)
	if err != nil {
		return nil, RemoveOutput{}, err
	}
	store, _ := s.reg.Membership(rel)
	output.Removed = store.Is(id, t)
	store.Remove(id, t)
	return jsonResult(output), output, nil
}

// KeyInput identifies one media entry.
type KeyInput struct {
	ID   int64  `json:"id"`
	Type string `json:"type,omitempty"`
}

var keySchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"id":   idProperty,
		"type": typeProperty,
	},
	"required": []string{"id"},
}

// CheckOutput reports an entry's membership in every collection.
type CheckOutput struct {
	ID       int64    `json:"id"`
	Type     string   `json:"type"`
	Liked    bool     `json:"liked"`
	Watched  bool     `json:"watched"`
	Wishlist bool     `json:"wishlist"`
	Rating   *float64 `json:"rating,omitempty"`
}

func (s *Server) registerCheckTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "check_collection",
		Description: "Check whether a movie or TV show is liked, watched, on the wishlist, and how it is rated.",
		InputSchema: keySchema,
	}, s.handleCheck)
}

func (s *Server) handleCheck(_ context.Context, _ *mcp.CallToolRequest, input KeyInput) (*mcp.CallToolResult, CheckOutput, error) {
	s.refresh()
	id, t, err := parseKey(input.ID, input.Type)
	if err != nil {
		return nil, CheckOutput{}, err
	}

	output := CheckOutput{
		ID:       input.ID,
		Type:     string(t),
		Liked:    s.reg.Liked().IsLiked(id, t),
		Watched:  s.reg.Watched().IsWatched(id, t),
		Wishlist: s.reg.Wishlist().IsInWishlist(id, t),
	}
	if rec, ok := s.reg.Ratings().Lookup(id, t); ok {
		rating := rec.Rating
		output.Rating = &rating
	}
	return jsonResult(output), output, nil
}

// SetRatingInput defines input for set_rating tool.
type SetRatingInput struct {
	ID     int64   `json:"id"`
	Type   string  `json:"type,omitempty"`
	Rating float64 `json:"rating"`
	Title  string  `json:"title,omitempty"`
}

func (s *Server) registerSetRatingTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "set_rating",
		Description: "Rate a movie or TV show from 0 to 5. Re-rating replaces the previous score.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id":   idProperty,
				"type": typeProperty,
				"rating": map[string]interface{}{
					"type":        "number",
					"minimum":     models.MinRating,
					"maximum":     models.MaxRating,
					"description": "Score between 0 and 5 inclusive",
				},
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Display title, used when the entry is rated for the first time",
				},
			},
			"required": []string{"id", "rating"},
		},
	}, s.handleSetRating)
}

func (s *Server) handleSetRating(_ context.Context, _ *mcp.CallToolRequest, input SetRatingInput) (*mcp.CallToolResult, EntryOutput, error) {
	s.refresh()
	id, t, err := parseKey(input.ID, input.Type)
	if err != nil {
		return nil, EntryOutput{}, err
	}
	if !models.ValidRating(input.Rating) {
		return nil, EntryOutput{}, fmt.Errorf("rating must be between %v and %v, got %v", models.MinRating, models.MaxRating, input.Rating)
	}

	s.reg.Ratings().SetRating(id, input.Rating, t, &models.MediaItem{Title: input.Title})
	rec, ok := s.reg.Ratings().Lookup(id, t)
	if !ok {
		return nil, EntryOutput{}, fmt.Errorf("failed to rate %s", models.NewKey(id, t))
	}

	output := ratingOutput(rec)
	return jsonResult(output), output, nil
}

// GetRatingOutput defines output for get_rating tool.
type GetRatingOutput struct {
	ID     int64   `json:"id"`
	Type   string  `json:"type"`
	Rating float64 `json:"rating"`
	Rated  bool    `json:"rated"`
}

func (s *Server) registerGetRatingTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_rating",
		Description: "Get the rating of a movie or TV show. Unrated entries report rating 0 with rated=false.",
		InputSchema: keySchema,
	}, s.handleGetRating)
}

func (s *Server) handleGetRating(_ context.Context, _ *mcp.CallToolRequest, input KeyInput) (*mcp.CallToolResult, GetRatingOutput, error) {
	s.refresh()
	id, t, err := parseKey(input.ID, input.Type)
	if err != nil {
		return nil, GetRatingOutput{}, err
	}

	_, rated := s.reg.Ratings().Lookup(id, t)
	output := GetRatingOutput{
		ID:     input.ID,
		Type:   string(t),
		Rating: s.reg.Ratings().GetRating(id, t),
		Rated:  rated,
	}
	return jsonResult(output), output, nil
}

// ListInput defines input for list_collection tool.
type ListInput struct {
	Collection string `json:"collection"`
}

// ListOutput defines output for list_collection tool.
type ListOutput struct {
	Collection string        `json:"collection"`
	Entries    []EntryOutput `json:"entries"`
	Count      int           `json:"count"`
}

func (s *Server) registerListTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_collection",
		Description: "List a collection. Liked, watched and wishlist are newest first; ratings are in the order they were first rated.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"collection": map[string]interface{}{
					"type":        "string",
					"enum":        stores.Names(),
					"description": "Collection to list",
				},
			},
			"required": []string{"collection"},
		},
	}, s.handleList)
}

func (s *Server) handleList(_ context.Context, _ *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, ListOutput, error) {
	s.refresh()
	entries, err := s.entries(input.Collection)
	if err != nil {
		return nil, ListOutput{}, err
	}
	output := ListOutput{
		Collection: input.Collection,
		Entries:    entries,
		Count:      len(entries),
	}
	return jsonResult(output), output, nil
}

func (s *Server) entries(name string) ([]EntryOutput, error) {
	if name == stores.RatingsName {
		recs := s.reg.Ratings().Items()
		out := make([]EntryOutput, len(recs))
		for i, rec := range recs {
			out[i] = ratingOutput(rec)
		}
		return out, nil
	}

	rel, err := stores.ParseRelation(name)
	if err != nil {
		return nil, err
	}
	store, _ := s.reg.Membership(rel)
	recs := store.Items()
	out := make([]EntryOutput, len(recs))
	for i, rec := range recs {
		out[i] = membershipOutput(rel, rec)
	}
	return out, nil
}

// SearchInput defines input for search_collections tool.
type SearchInput struct {
	Query      string `json:"query"`
	Collection string `json:"collection,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// SearchHit is one search result.
type SearchHit struct {
	Collection string   `json:"collection"`
	ID         int64    `json:"id"`
	Type       string   `json:"type"`
	Title      string   `json:"title"`
	Rating     *float64 `json:"rating,omitempty"`
}

// SearchOutput defines output for search_collections tool.
type SearchOutput struct {
	Query     string      `json:"query"`
	Hits      []SearchHit `json:"hits"`
	Suggested bool        `json:"suggested"`
	Count     int         `json:"count"`
}

const defaultSearchLimit = 20

func (s *Server) registerSearchTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_collections",
		Description: "Fuzzy search titles across all collections. When nothing matches, close spellings are returned with suggested=true.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Title text to look for",
				},
				"collection": map[string]interface{}{
					"type":        "string",
					"enum":        stores.Names(),
					"description": "Optional collection to restrict results to",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of hits (default 20)",
				},
			},
			"required": []string{"query"},
		},
	}, s.handleSearch)
}

func (s *Server) handleSearch(_ context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	if input.Query == "" {
		return nil, SearchOutput{}, fmt.Errorf("query is required")
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	s.refresh()
	entries := search.FilterCollection(search.Entries(s.reg), input.Collection)
	hits, suggested := search.Search(entries, input.Query, limit)

	output := SearchOutput{
		Query:     input.Query,
		Hits:      make([]SearchHit, len(hits)),
		Suggested: suggested,
		Count:     len(hits),
	}
	for i, h := range hits {
		output.Hits[i] = SearchHit{
			Collection: h.Collection,
			ID:         int64(h.ID),
			Type:       string(h.Type),
			Title:      h.Title,
		}
		if h.Rated {
			rating := h.Rating
			output.Hits[i].Rating = &rating
		}
	}
	return jsonResult(output), output, nil
}
