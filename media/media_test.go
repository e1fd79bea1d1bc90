package media

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/concursos/config"
)

type fakeS3 struct {
	s3iface.S3API
	put     *s3.PutObjectInput
	deleted []string
	err     error
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	f.put = in
	return &s3.PutObjectOutput{}, f.err
}

func (f *fakeS3) DeleteObjectWithContext(_ aws.Context, in *s3.DeleteObjectInput, _ ...request.Option) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.StringValue(in.Key))
	return &s3.DeleteObjectOutput{}, f.err
}

func TestS3_PutAndDelete(t *testing.T) {
	ctx := context.Background()
	fake := &fakeS3{}
	st := NewS3(fake, "fotos", "us-east-1", "")

	url, err := st.Put(ctx, "ganado/g1/a.jpg", strings.NewReader("jpeg"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://fotos.s3.us-east-1.amazonaws.com/ganado/g1/a.jpg", url)
	assert.Equal(t, "fotos", aws.StringValue(fake.put.Bucket))
	assert.Equal(t, "image/jpeg", aws.StringValue(fake.put.ContentType))

	require.NoError(t, st.Delete(ctx, "ganado/g1/a.jpg"))
	assert.Equal(t, []string{"ganado/g1/a.jpg"}, fake.deleted)
}

func TestS3_PublicURLAndErrors(t *testing.T) {
	fake := &fakeS3{err: errors.New("denied")}
	st := NewS3(fake, "fotos", "us-east-1", "https://cdn.example.com/")

	assert.Equal(t, "https://cdn.example.com/k.png", st.URL("k.png"))

	_, err := st.Put(context.Background(), "k.png", strings.NewReader("x"), "")
	assert.Error(t, err)
	assert.Nil(t, fake.put.ContentType)
}

func TestNew_DisabledWithoutBucket(t *testing.T) {
	st, err := New(&config.Config{})
	require.NoError(t, err)

	_, err = st.Put(context.Background(), "k", strings.NewReader("x"), "")
	assert.ErrorIs(t, err, ErrDisabled)
	assert.ErrorIs(t, st.Delete(context.Background(), "k"), ErrDisabled)
}
