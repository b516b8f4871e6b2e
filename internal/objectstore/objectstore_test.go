// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package objectstore

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeS3 struct {
	buckets   []string
	objects   map[string][]string
	listErr   error
	created   []*s3.CreateBucketInput
	createErr error
}

func (f *fakeS3) ListBuckets(_ context.Context, _ *s3.ListBucketsInput, _ ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := &s3.ListBucketsOutput{}
	for _, b := range f.buckets {
		out.Buckets = append(out.Buckets, s3types.Bucket{Name: aws.String(b)})
	}
	return out, nil
}

func (f *fakeS3) CreateBucket(_ context.Context, in *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, in)
	f.buckets = append(f.buckets, aws.ToString(in.Bucket))
	return &s3.CreateBucketOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	out := &s3.ListObjectsV2Output{}
	for _, k := range f.objects[aws.ToString(in.Bucket)] {
		out.Contents = append(out.Contents, s3types.Object{Key: aws.String(k)})
	}
	return out, nil
}

func TestEnsureBucket(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		fake        *fakeS3
		region      string
		wantErr     bool
		wantCreated int
	}{
		{name: "already present", fake: &fakeS3{buckets: []string{"other", "refeed-rampage"}}, region: "us-east-1"},
		{name: "created when absent", fake: &fakeS3{buckets: []string{"other"}}, region: "us-east-1", wantCreated: 1},
		{name: "list fails", fake: &fakeS3{listErr: errors.New("no route to host")}, wantErr: true},
		{name: "create fails", fake: &fakeS3{createErr: errors.New("access denied")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := EnsureBucket(context.Background(), NewS3Store(tt.fake, tt.region), "refeed-rampage")
			if (err != nil) != tt.wantErr {
				t.Fatalf("EnsureBucket error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(tt.fake.created) != tt.wantCreated {
				t.Errorf("created %d buckets, want %d", len(tt.fake.created), tt.wantCreated)
			}
		})
	}
}

func TestS3Store_CreateBucketLocation(t *testing.T) {
	t.Parallel()

	fake := &fakeS3{}
	if err := NewS3Store(fake, "us-west-2").CreateBucket(context.Background(), "b"); err != nil {
		t.Fatal(err)
	}
	cfg := fake.created[0].CreateBucketConfiguration
	if cfg == nil || cfg.LocationConstraint != s3types.BucketLocationConstraintUsWest2 {
		t.Errorf("location constraint = %+v, want us-west-2", cfg)
	}

	fake = &fakeS3{}
	_ = NewS3Store(fake, "us-east-1").CreateBucket(context.Background(), "b")
	if fake.created[0].CreateBucketConfiguration != nil {
		t.Error("us-east-1 must not send a location constraint")
	}
}

func TestS3Store_ListKeys(t *testing.T) {
	t.Parallel()
	fake := &fakeS3{objects: map[string][]string{"photos": {"meals/1.jpg", "meals/2.jpg"}}}

	keys, err := NewS3Store(fake, "").ListKeys(context.Background(), "photos", "meals/")
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 || keys[0] != "meals/1.jpg" {
		t.Errorf("keys = %v", keys)
	}
}

func TestMemoryBucketStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := NewMemoryBucketStore()

	if err := EnsureBucket(ctx, m, "photos"); err != nil {
		t.Fatalf("EnsureBucket: %v", err)
	}
	if err := EnsureBucket(ctx, m, "photos"); err != nil {
		t.Fatalf("EnsureBucket twice: %v", err)
	}

	_ = m.PutObject("photos", "b.jpg", []byte("x"))
	_ = m.PutObject("photos", "a.jpg", []byte("y"))
	_ = m.PutObject("photos", "thumbs/a.jpg", []byte("z"))

	keys, err := m.ListKeys(ctx, "photos", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 3 || keys[0] != "a.jpg" {
		t.Errorf("keys = %v, want sorted 3 keys", keys)
	}

	if _, err := m.ListKeys(ctx, "missing", ""); err == nil {
		t.Error("expected error for missing bucket")
	}
}
