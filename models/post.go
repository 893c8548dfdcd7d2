package models

import "time"

// Post 는 게시판 글 문서다.
// Collection: posts
//
// _id 는 counters 컬렉션에서 발급한 정수다. 대시보드는 id 를 문자열로 다룬다.
type Post struct {
	ID        int64     `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	Title     string    `bson:"title" json:"title"`
	Body      string    `bson:"body" json:"body"`
	Category  string    `bson:"category" json:"category"`
	Tags      []string  `bson:"tags" json:"tags"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"-"`
}
