package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"countrylookup/internal/country"
	"countrylookup/internal/view"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

const SearchProcedure = "/countrylookup.v1.LookupService/Search"

// SearchRequest and SearchResponse travel as google.protobuf.Struct, so the
// JSON form of a message is exactly the JSON form of these structs.
type SearchRequest struct {
	Name string `json:"name"`
}

type SearchResponse struct {
	// Kind is either "cards" or "error".
	Kind    string         `json:"kind"`
	Message string         `json:"message,omitempty"`
	Cards   []country.Card `json:"cards,omitempty"`
}

func newSearchResponse(v view.ResultView) SearchResponse {
	res := SearchResponse{Kind: v.Kind.String()}
	switch v.Kind {
	case view.KindError:
		res.Message = v.Message
	case view.KindCards:
		res.Cards = country.NewCards(v.Records)
	}
	return res
}

func toStruct(v any) (*structpb.Struct, error) {
	buf, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	msg := &structpb.Struct{}
	err = protojson.Unmarshal(buf, msg)
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func fromStruct(msg *structpb.Struct, v any) error {
	buf, err := protojson.Marshal(msg)
	if err != nil {
		return err
	}
	return json.Unmarshal(buf, v)
}

func (s *Server) search(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	var in SearchRequest
	err := fromStruct(req.Msg, &in)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	result := s.fetcher.FetchCountryData(ctx, in.Name, discard)
	out, err := toStruct(newSearchResponse(result))
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(out), nil
}

func (s *Server) searchHandler(opts ...connect.HandlerOption) (string, http.Handler) {
	return SearchProcedure, connect.NewUnaryHandler(SearchProcedure, s.search, opts...)
}

// SearchClient calls the search procedure of a running server.
type SearchClient struct {
	client *connect.Client[structpb.Struct, structpb.Struct]
}

func NewSearchClient(httpClient connect.HTTPClient, baseUrl string) SearchClient {
	return SearchClient{
		client: connect.NewClient[structpb.Struct, structpb.Struct](
			httpClient,
			baseUrl+SearchProcedure,
			connect.WithProtoJSON(),
		),
	}
}

func (c SearchClient) Search(ctx context.Context, name string) (SearchResponse, error) {
	msg, err := toStruct(SearchRequest{Name: name})
	if err != nil {
		return SearchResponse{}, err
	}
	res, err := c.client.CallUnary(ctx, connect.NewRequest(msg))
	if err != nil {
		return SearchResponse{}, err
	}
	var out SearchResponse
	err = fromStruct(res.Msg, &out)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("decode search response: %w", err)
	}
	return out, nil
}
