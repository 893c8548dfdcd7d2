package repositories

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"post-dashboard/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidCursor = errors.New("invalid cursor")
	ErrInvalidRange  = errors.New("invalid date range")
)

const (
	DefaultLimit = 10
	MaxLimit     = 100

	cursorPrefix = "o:"
)

type PostRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection("posts"), counters: db.Collection("counters")}
}

// ListPostsOptions 는 GET /posts 쿼리다. 빈 값은 조건 없음이다.
// Cursor 는 nextCursor 또는 prevCursor 로 받은 불투명 문자열이다.
type ListPostsOptions struct {
	Limit    int
	Sort     string
	Order    string
	Category string
	Search   string
	Cursor   string
	From     string
	To       string
}

type PostPage struct {
	Items      []models.Post `json:"items"`
	PrevCursor string        `json:"prevCursor,omitempty"`
	NextCursor string        `json:"nextCursor,omitempty"`
}

// EncodeCursor 는 offset 을 base64 커서로 바꾼다.
func EncodeCursor(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(cursorPrefix + strconv.Itoa(offset)))
}

func DecodeCursor(cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, ErrInvalidCursor
	}
	n, err := strconv.Atoi(strings.TrimPrefix(string(raw), cursorPrefix))
	if err != nil || n < 0 || !strings.HasPrefix(string(raw), cursorPrefix) {
		return 0, ErrInvalidCursor
	}
	return n, nil
}

// parseDate 는 RFC3339 또는 YYYY-MM-DD 를 받는다.
func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, v)
}

// BuildFilter 는 카테고리(정확히 일치), 검색어(제목/본문 대소문자 무시 부분 일치),
// 작성일 범위로 Mongo 필터를 만든다.
func BuildFilter(opt ListPostsOptions) (bson.M, error) {
	filter := bson.M{}
	if c := strings.ToUpper(strings.TrimSpace(opt.Category)); c != "" {
		filter["category"] = c
	}
	if s := strings.TrimSpace(opt.Search); s != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
		filter["$or"] = []bson.M{
			{"title": re},
			{"body": re},
		}
	}

	created := bson.M{}
	if opt.From != "" {
		t, err := parseDate(opt.From)
		if err != nil {
			return nil, fmt.Errorf("%w: from=%s", ErrInvalidRange, opt.From)
		}
		created["$gte"] = t
	}
	if opt.To != "" {
		t, err := parseDate(opt.To)
		if err != nil {
			return nil, fmt.Errorf("%w: to=%s", ErrInvalidRange, opt.To)
		}
		// 날짜만 주면 그 날 전체를 포함한다.
		if len(opt.To) == len(time.DateOnly) {
			t = t.Add(24 * time.Hour)
			created["$lt"] = t
		} else {
			created["$lte"] = t
		}
	}
	if len(created) > 0 {
		filter["created_at"] = created
	}
	return filter, nil
}

// SortSpec 은 정렬 기준과 방향을 Mongo 정렬로 바꾼다. 기본은 작성일 내림차순이며
// 같은 값끼리는 _id 로 순서를 고정한다.
func SortSpec(sort, order string) bson.D {
	field := "created_at"
	if sort == "title" {
		field = "title"
	}
	dir := -1
	if strings.EqualFold(order, "asc") {
		dir = 1
	}
	return bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}}
}

func normalizeLimit(n int) int {
	if n <= 0 {
		return DefaultLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

// List 는 필터와 offset 커서로 한 페이지를 돌려준다.
func (r *PostRepository) List(ctx context.Context, opt ListPostsOptions) (PostPage, error) {
	offset, err := DecodeCursor(opt.Cursor)
	if err != nil {
		return PostPage{}, err
	}
	filter, err := BuildFilter(opt)
	if err != nil {
		return PostPage{}, err
	}
	limit := normalizeLimit(opt.Limit)

	findOpts := options.Find().
		SetSkip(int64(offset)).
		SetLimit(int64(limit + 1)).
		SetSort(SortSpec(opt.Sort, opt.Order))
	cur, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return PostPage{}, err
	}
	defer cur.Close(ctx)

	results := make([]models.Post, 0, limit+1)
	if err := cur.All(ctx, &results); err != nil {
		return PostPage{}, err
	}
	return pageOf(results, offset, limit), nil
}

// pageOf 는 limit+1 개까지 읽은 결과로 페이지와 앞뒤 커서를 만든다.
func pageOf(results []models.Post, offset, limit int) PostPage {
	page := PostPage{Items: results}
	if len(results) > limit {
		page.Items = results[:limit]
		page.NextCursor = EncodeCursor(offset + limit)
	}
	if offset > 0 {
		page.PrevCursor = EncodeCursor(max(offset-limit, 0))
	}
	for i := range page.Items {
		if page.Items[i].Tags == nil {
			page.Items[i].Tags = []string{}
		}
	}
	return page
}

func (r *PostRepository) FindByID(ctx context.Context, id int64) (*models.Post, error) {
	var p models.Post
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Insert 는 새 id 를 발급해 글을 저장한다.
func (r *PostRepository) Insert(ctx context.Context, p *models.Post) error {
	id, err := r.nextID(ctx)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	p.ID = id
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.Tags == nil {
		p.Tags = []string{}
	}
	_, err = r.col.InsertOne(ctx, p)
	return err
}

// Update 는 제목/본문/카테고리/태그를 바꾸고 바뀐 문서를 돌려준다.
func (r *PostRepository) Update(ctx context.Context, id int64, p models.Post) (*models.Post, error) {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	update := bson.M{"$set": bson.M{
		"title":      p.Title,
		"body":       p.Body,
		"category":   p.Category,
		"tags":       tags,
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var out models.Post
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *PostRepository) nextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx, bson.M{"_id": "posts"}, bson.M{"$inc": bson.M{"seq": 1}}, opts).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}
