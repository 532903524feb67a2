package controllers

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"carers-store/config"
	"carers-store/models"
	"carers-store/utils"

	"github.com/gin-gonic/gin"
)

type BlogController struct{}

func NewBlogController() *BlogController {
	return &BlogController{}
}

const postColumns = `id, title, slug, COALESCE(excerpt, ''), content, COALESCE(featured_image, ''), author_id, status, COALESCE(tags, '{}'), created_at, updated_at`

func scanPost(row interface {
	Scan(dest ...interface{}) error
}, p *models.Post) error {
	return row.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.FeaturedImage,
		&p.AuthorID, &p.Status, &p.Tags, &p.CreatedAt, &p.UpdatedAt)
}

// @Summary List published posts
// @Tags Blog
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.PaginationResponse
// @Router /posts [get]
func (ctrl *BlogController) GetPublishedPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	ctx := context.Background()

	var total int
	config.DB.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE status = 'published'`).Scan(&total)

	rows, err := config.DB.Query(ctx,
		`SELECT `+postColumns+` FROM posts WHERE status = 'published' ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to retrieve posts",
			Error:   err.Error(),
		})
		return
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var p models.Post
		if err := scanPost(rows, &p); err != nil {
			continue
		}
		posts = append(posts, p)
	}

	c.JSON(http.StatusOK, models.PaginationResponse{
		Success: true,
		Message: "Posts retrieved",
		Data:    posts,
		Meta: models.MetaData{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// @Summary Get post by slug
// @Tags Blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{slug} [get]
func (ctrl *BlogController) GetPostBySlug(c *gin.Context) {
	slug := c.Param("slug")

	var p models.Post
	err := scanPost(config.DB.QueryRow(context.Background(),
		`SELECT `+postColumns+` FROM posts WHERE slug = $1 AND status = 'published'`, slug), &p)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Post not found",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Post retrieved",
		Data:    p,
	})
}

// @Summary Create post
// @Tags Blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreatePostRequest true "Post content"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/posts [post]
func (ctrl *BlogController) CreatePost(c *gin.Context) {
	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	authorID, _ := c.Get("user_id")
	status := req.Status
	if status == "" {
		status = "draft"
	}

	p := models.Post{
		Title:         req.Title,
		Slug:          utils.Slugify(req.Title),
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		FeaturedImage: req.FeaturedImage,
		AuthorID:      authorID.(int),
		Status:        status,
		Tags:          req.Tags,
	}

	now := time.Now()
	err := config.DB.QueryRow(context.Background(),
		`INSERT INTO posts (title, slug, excerpt, content, featured_image, author_id, status, tags, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		p.Title, p.Slug, p.Excerpt, p.Content, p.FeaturedImage, p.AuthorID, p.Status, p.Tags, now, now,
	).Scan(&p.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Failed to create post. The slug may already exist",
			Error:   err.Error(),
		})
		return
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Post created",
		Data:    p,
	})
}

// @Summary Update post
// @Tags Blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body models.UpdatePostRequest true "Fields to update"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/posts/{id} [put]
func (ctrl *BlogController) UpdatePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid post ID",
		})
		return
	}

	var req models.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	var p models.Post
	err = scanPost(config.DB.QueryRow(context.Background(),
		`SELECT `+postColumns+` FROM posts WHERE id = $1`, id), &p)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Post not found",
		})
		return
	}

	if req.Title != "" {
		p.Title = req.Title
		p.Slug = utils.Slugify(req.Title)
	}
	if req.Content != "" {
		p.Content = req.Content
	}
	if req.Excerpt != "" {
		p.Excerpt = req.Excerpt
	}
	if req.FeaturedImage != "" {
		p.FeaturedImage = req.FeaturedImage
	}
	if req.Status != "" {
		p.Status = req.Status
	}
	if req.Tags != nil {
		p.Tags = req.Tags
	}
	p.UpdatedAt = time.Now()

	_, err = config.DB.Exec(context.Background(),
		`UPDATE posts SET title=$1, slug=$2, excerpt=$3, content=$4, featured_image=$5, status=$6, tags=$7, updated_at=$8 WHERE id=$9`,
		p.Title, p.Slug, p.Excerpt, p.Content, p.FeaturedImage, p.Status, p.Tags, p.UpdatedAt, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to update post",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Post updated",
		Data:    p,
	})
}

// @Summary Delete post
// @Tags Blog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} models.Response
// @Router /admin/posts/{id} [delete]
func (ctrl *BlogController) DeletePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid post ID",
		})
		return
	}

	tag, err := config.DB.Exec(context.Background(), `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to delete post",
			Error:   err.Error(),
		})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Post not found",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Post deleted",
	})
}
