package grpc

import (
	"context"
	"errors"
	"math"
	"strconv"

	"github.com/rs/zerolog"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Belphemur/ShowShelf/internal/apperrors"
	"github.com/Belphemur/ShowShelf/internal/config"
	"github.com/Belphemur/ShowShelf/internal/filter"
	"github.com/Belphemur/ShowShelf/internal/models"
)

// Catalog is the memoized data source the service reads from
type Catalog interface {
	Shows(ctx context.Context) ([]models.Show, error)
	Episodes(ctx context.Context, showID int) ([]models.Episode, error)
}

// server implements the CatalogServer interface
type server struct {
	catalog Catalog
	logger  zerolog.Logger
}

// NewServer creates a new gRPC server instance
func NewServer(c Catalog) CatalogServer {
	return &server{
		catalog: c,
		logger:  config.GetLogger(),
	}
}

// ListShows implements CatalogServer.ListShows
func (s *server) ListShows(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	query := stringField(req, "query")
	s.logger.Debug().Str("query", query).Msg("ListShows called")

	shows, err := s.catalog.Shows(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list shows")
		return nil, toStatus(err, "shows", 0)
	}

	matched := filter.Shows(shows, query)
	s.logger.Debug().Int("count", len(matched)).Msg("ListShows completed")
	return convertShowsToProto(matched), nil
}

// ListEpisodes implements CatalogServer.ListEpisodes
func (s *server) ListEpisodes(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	showID, err := showIDField(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	query := stringField(req, "query")
	s.logger.Debug().Int("show_id", showID).Str("query", query).Msg("ListEpisodes called")

	episodes, err := s.catalog.Episodes(ctx, showID)
	if err != nil {
		s.logger.Error().Err(err).Int("show_id", showID).Msg("Failed to list episodes")
		return nil, toStatus(err, "episodes", showID)
	}

	matched := filter.Episodes(episodes, query)
	s.logger.Debug().Int("show_id", showID).Int("count", len(matched)).Msg("ListEpisodes completed")
	return convertEpisodesToProto(matched), nil
}

func stringField(req *structpb.Struct, name string) string {
	if req == nil {
		return ""
	}
	return req.GetFields()[name].GetStringValue()
}

// showIDField accepts show_id as a whole number or a decimal string
func showIDField(req *structpb.Struct) (int, error) {
	v, ok := req.GetFields()["show_id"]
	if !ok {
		return 0, errors.New("show_id is required")
	}

	var id int
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		n := kind.NumberValue
		if n != math.Trunc(n) || n > math.MaxInt32 {
			return 0, errors.New("show_id must be a whole number")
		}
		id = int(n)
	case *structpb.Value_StringValue:
		parsed, err := strconv.Atoi(kind.StringValue)
		if err != nil {
			return 0, errors.New("show_id must be a whole number")
		}
		id = parsed
	default:
		return 0, errors.New("show_id must be a number")
	}

	if id <= 0 {
		return 0, errors.New("show_id must be positive")
	}
	return id, nil
}

// toStatus maps catalog failures onto gRPC status codes. A missing show carries a ResourceInfo detail.
func toStatus(err error, resource string, showID int) error {
	switch {
	case errors.Is(err, &apperrors.ErrNotFound{}):
		st := status.New(codes.NotFound, apperrors.UserMessage(resource, err))
		detailed, derr := st.WithDetails(&errdetails.ResourceInfo{
			ResourceType: "show",
			ResourceName: strconv.Itoa(showID),
			Description:  err.Error(),
		})
		if derr != nil {
			return st.Err()
		}
		return detailed.Err()
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, &apperrors.ErrNetwork{}), errors.Is(err, &apperrors.ErrHTTPStatus{}):
		return status.Error(codes.Unavailable, apperrors.UserMessage(resource, err))
	default:
		return status.Errorf(codes.Internal, "failed to list %s: %v", resource, err)
	}
}
