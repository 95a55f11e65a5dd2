package grpc

import (
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Belphemur/ShowShelf/internal/models"
)

// convertShowToProto converts a models.Show to a struct value.
// Missing rating and runtime become null.
func convertShowToProto(show models.Show) *structpb.Value {
	genres := make([]*structpb.Value, len(show.Genres))
	for i, g := range show.Genres {
		genres[i] = structpb.NewStringValue(g)
	}

	rating := structpb.NewNullValue()
	if show.Rating.Average != nil {
		rating = structpb.NewNumberValue(*show.Rating.Average)
	}
	runtime := structpb.NewNullValue()
	if show.Runtime != nil {
		runtime = structpb.NewNumberValue(float64(*show.Runtime))
	}

	return structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
		"id":        structpb.NewNumberValue(float64(show.ID)),
		"name":      structpb.NewStringValue(show.Name),
		"summary":   structpb.NewStringValue(show.Summary),
		"status":    structpb.NewStringValue(show.Status),
		"genres":    structpb.NewListValue(&structpb.ListValue{Values: genres}),
		"rating":    rating,
		"runtime":   runtime,
		"image_url": structpb.NewStringValue(show.PosterURL()),
	}})
}

// convertEpisodeToProto converts a models.Episode to a struct value
func convertEpisodeToProto(ep models.Episode) *structpb.Value {
	return structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
		"id":        structpb.NewNumberValue(float64(ep.ID)),
		"name":      structpb.NewStringValue(ep.Name),
		"season":    structpb.NewNumberValue(float64(ep.Season)),
		"number":    structpb.NewNumberValue(float64(ep.Number)),
		"code":      structpb.NewStringValue(ep.Code()),
		"summary":   structpb.NewStringValue(ep.Summary),
		"image_url": structpb.NewStringValue(ep.PosterURL()),
	}})
}

func convertShowsToProto(shows []models.Show) *structpb.ListValue {
	values := make([]*structpb.Value, len(shows))
	for i, s := range shows {
		values[i] = convertShowToProto(s)
	}
	return &structpb.ListValue{Values: values}
}

func convertEpisodesToProto(episodes []models.Episode) *structpb.ListValue {
	values := make([]*structpb.Value, len(episodes))
	for i, ep := range episodes {
		values[i] = convertEpisodeToProto(ep)
	}
	return &structpb.ListValue{Values: values}
}
