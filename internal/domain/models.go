// Package domain defines the persistence models for topics, users, articles
// and comments. These types are mapped with GORM and form the core data layer
// of the news API.
package domain

import "time"

// Topic is a subject articles are filed under. Topics are seeded outside the
// API and are read-only from its perspective.
//
// Fields:
//   - Slug: unique identifier (primary key), e.g. "cats".
//   - Description: short human-readable blurb.
type Topic struct {
	Slug        string `json:"slug"        gorm:"type:varchar(255);primaryKey"`
	Description string `json:"description" gorm:"type:text;not null;default:''"`
}

// TableName returns the database table name for Topic.
func (Topic) TableName() string { return "topics" }

// User is an article or comment author. Users are seeded outside the API.
type User struct {
	Username  string `json:"username"   gorm:"type:varchar(255);primaryKey"`
	Name      string `json:"name"       gorm:"type:varchar(255);not null"`
	AvatarURL string `json:"avatar_url" gorm:"type:text;column:avatar_url"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Article is a published piece filed under a topic and written by a user.
// Votes are the only attribute mutated through the API.
//
// Fields:
//   - ArticleID: store-assigned primary key.
//   - Topic: foreign key to topics.slug.
//   - Author: foreign key to users.username.
//   - CommentCount: derived at query time by counting related comments; it is
//     read-only and never migrated as a column.
type Article struct {
	ArticleID     int64     `json:"article_id"      gorm:"primaryKey;autoIncrement"`
	Title         string    `json:"title"           gorm:"type:varchar(255);not null"`
	Topic         string    `json:"topic"           gorm:"type:varchar(255);not null;index"`
	Author        string    `json:"author"          gorm:"type:varchar(255);not null;index"`
	Body          string    `json:"body"            gorm:"type:text;not null"`
	CreatedAt     time.Time `json:"created_at"      gorm:"not null;index"`
	Votes         int       `json:"votes"           gorm:"not null;default:0"`
	ArticleImgURL string    `json:"article_img_url" gorm:"type:text;column:article_img_url"`
	CommentCount  int64     `json:"comment_count"   gorm:"->;-:migration"`

	TopicRow  *Topic `json:"-" gorm:"foreignKey:Topic;references:Slug;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	AuthorRow *User  `json:"-" gorm:"foreignKey:Author;references:Username;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	// Comments owns the comments.article_id constraint. A Comment.Article
	// back-pointer would parse as has-one since both structs carry ArticleID.
	Comments []Comment `json:"-" gorm:"foreignKey:ArticleID;references:ArticleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Article.
func (Article) TableName() string { return "articles" }

// Comment is a user's remark on an article. Comments are created and deleted
// through the API.
type Comment struct {
	CommentID int64     `json:"comment_id" gorm:"primaryKey;autoIncrement"`
	Body      string    `json:"body"       gorm:"type:text;not null"`
	ArticleID int64     `json:"article_id" gorm:"not null;index:idx_article_comments,priority:1"`
	Author    string    `json:"author"     gorm:"type:varchar(255);not null"`
	Votes     int       `json:"votes"      gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;index:idx_article_comments,priority:2"`

	AuthorRow *User `json:"-" gorm:"foreignKey:Author;references:Username;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Comment.
func (Comment) TableName() string { return "comments" }
