/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 *
 * Package s3store keeps objects in an Amazon S3 bucket. A Store satisfies
 * httpcache.Cache so rating lookups can be cached across runs, and it
 * archives the published pairings of every round as JSON. The cache half is
 * derived from github.com/sourcegraph/s3cache.
 */
package s3store

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/mikeb26/chessclub-swiss/swiss"
)

// ErrNotFound is returned by GetRound when no archive exists for the round.
var ErrNotFound = errors.New("s3store: object not found")

// Store objects are kept under a fixed prefix in a single bucket.
type Store struct {
	// Client is initialized by Init() from the default AWS config; callers
	// may replace it before use.
	Client *s3.Client

	bucketName string
	prefix     string
	gzip       bool
	logErrors  bool

	// context used for the httpcache.Cache methods, which take none
	ctx context.Context
}

// RoundArchive is the JSON document written for each paired round.
type RoundArchive struct {
	TournamentID string          `json:"tournamentId"`
	Round        int             `json:"round"`
	Pairings     *swiss.Pairings `json:"pairings"`
}

// New returns a Store for the given bucket. Objects are written below
// prefix and optionally gzipped. Init() must be called before use.
func New(ctx context.Context, bucketName string, prefix string, gzipIn bool,
	logErrors bool) *Store {

	return &Store{
		ctx:        ctx,
		bucketName: bucketName,
		prefix:     prefix,
		gzip:       gzipIn,
		logErrors:  logErrors,
	}
}

// Init loads the default AWS configuration (environment, then shared
// config files) and verifies the bucket is reachable and listable.
func (s *Store) Init() error {
	cfg, err := config.LoadDefaultConfig(s.ctx)
	if err != nil {
		return fmt.Errorf("s3store.init: failed to load AWS config: %w", err)
	}
	if s.Client == nil {
		s.Client = s3.NewFromConfig(cfg)
	}

	if _, err = s.Client.HeadBucket(s.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucketName),
	}); err != nil {
		return fmt.Errorf("s3store.init: head bucket failed for %s: %w",
			s.bucketName, err)
	}
	if _, err = s.Client.ListObjectsV2(s.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucketName),
		Prefix:  aws.String(s.prefix),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("s3store.init: list objects failed for %s: %w",
			s.bucketName, err)
	}

	return nil
}

// Get implements httpcache.Cache.
func (s *Store) Get(key string) ([]byte, bool) {
	data, err := s.get(s.ctx, s.cacheKeyToObjectKey(key))
	if err != nil {
		if s.logErrors && !errors.Is(err, ErrNotFound) {
			log.Printf("s3store.get: %v", err)
		}
		return nil, false
	}

	return data, true
}

// Set implements httpcache.Cache.
func (s *Store) Set(key string, data []byte) {
	if err := s.put(s.ctx, s.cacheKeyToObjectKey(key), data); err != nil {
		if s.logErrors {
			log.Printf("s3store.set: %v", err)
		}
	}
}

// Delete implements httpcache.Cache.
func (s *Store) Delete(key string) {
	objKey := s.cacheKeyToObjectKey(key)
	_, err := s.Client.DeleteObject(s.ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objKey),
	})
	if err != nil && s.logErrors {
		log.Printf("s3store.delete: delete failed for %v%v: %v", s.bucketName,
			objKey, err)
	}
}

// PutRound archives the pairings of a round.
func (s *Store) PutRound(ctx context.Context, tournamentID string, round int,
	pairings *swiss.Pairings) error {

	data, err := json.Marshal(RoundArchive{
		TournamentID: tournamentID,
		Round:        round,
		Pairings:     pairings,
	})
	if err != nil {
		return fmt.Errorf("s3store.putround: failed to marshal round %v: %w",
			round, err)
	}

	return s.put(ctx, s.roundObjectKey(tournamentID, round), data)
}

// GetRound reads back an archived round.
func (s *Store) GetRound(ctx context.Context, tournamentID string,
	round int) (*RoundArchive, error) {

	data, err := s.get(ctx, s.roundObjectKey(tournamentID, round))
	if err != nil {
		return nil, err
	}
	var ra RoundArchive
	if err := json.Unmarshal(data, &ra); err != nil {
		return nil, fmt.Errorf("s3store.getround: failed to parse round %v: %w",
			round, err)
	}

	return &ra, nil
}

func (s *Store) get(ctx context.Context, objKey string) ([]byte, error) {
	resp, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objKey),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey" {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get object %v%v: %w", s.bucketName,
			objKey, err)
	}
	defer resp.Body.Close()

	rdr := resp.Body
	if s.gzip {
		rdr, err = gzip.NewReader(rdr)
		if err != nil {
			return nil, fmt.Errorf("failed to open compressed object %v%v: %w",
				s.bucketName, objKey, err)
		}
		defer rdr.Close()
	}
	data, err := io.ReadAll(rdr)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %v%v: %w", s.bucketName,
			objKey, err)
	}

	return data, nil
}

func (s *Store) put(ctx context.Context, objKey string, data []byte) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objKey),
		Body:   bytes.NewReader(data),
	}
	if s.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			return fmt.Errorf("failed to gzip data for %v%v: %w", s.bucketName,
				objKey, err)
		}
		if err := gw.Close(); err != nil {
			return fmt.Errorf("failed to close gzip writer for %v%v: %w",
				s.bucketName, objKey, err)
		}
		input.Body = &buf
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := s.Client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put failed for %v%v: %w", s.bucketName, objKey, err)
	}

	return nil
}

func (s *Store) suffix() string {
	if s.gzip {
		return ".gz"
	}
	return ""
}

func (s *Store) cacheKeyToObjectKey(key string) string {
	h := md5.New()
	io.WriteString(h, key)

	return fmt.Sprintf("%v/httpcache/%v%v", s.prefix,
		hex.EncodeToString(h.Sum(nil)), s.suffix())
}

func (s *Store) roundObjectKey(tournamentID string, round int) string {
	return fmt.Sprintf("%v/rounds/%v/%03d.json%v", s.prefix, tournamentID,
		round, s.suffix())
}
