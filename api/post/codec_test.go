package post

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestCodecRegistered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, CodecName, c.Name())
}

func TestCodecDistinguishesAbsentAndEmptyTags(t *testing.T) {
	c := codec{}

	data, err := c.Marshal(&UpdatePostRequest{PostId: 1, UpdaterId: 2, Tags: &TagList{Values: []string{}}})
	require.NoError(t, err)
	var cleared UpdatePostRequest
	require.NoError(t, c.Unmarshal(data, &cleared))
	require.NotNil(t, cleared.Tags)
	assert.NotNil(t, cleared.Tags.Values)
	assert.Empty(t, cleared.Tags.Values)

	data, err = c.Marshal(&UpdatePostRequest{PostId: 1, UpdaterId: 2})
	require.NoError(t, err)
	var absent UpdatePostRequest
	require.NoError(t, c.Unmarshal(data, &absent))
	assert.Nil(t, absent.Tags)
	assert.Nil(t, absent.Title)
}

func TestCodecPreservesTimestamps(t *testing.T) {
	c := codec{}
	createdAt := time.Date(2024, 3, 1, 12, 30, 15, 500, time.UTC)

	data, err := c.Marshal(&PostResponse{Post: &Post{Id: 1, CreatedAt: timestamppb.New(createdAt)}, Success: true})
	require.NoError(t, err)

	var resp PostResponse
	require.NoError(t, c.Unmarshal(data, &resp))
	require.NotNil(t, resp.Post)
	assert.True(t, createdAt.Equal(resp.Post.CreatedAt.AsTime()))
}
