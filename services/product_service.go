package services

import (
	"errors"
	"log"
	"math"

	"carers-store/libs"
	"carers-store/models"
	"carers-store/repositories"
)

type ProductService struct {
	productRepo *repositories.ProductRepository
}

func NewProductService() *ProductService {
	return &ProductService{
		productRepo: repositories.NewProductRepository(),
	}
}

func (s *ProductService) GetAllProducts(page, limit int) (*models.PaginationResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	products, total, err := s.productRepo.GetAllProducts(page, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return &models.PaginationResponse{
		Success: true,
		Message: "Products retrieved successfully",
		Data:    products,
		Meta: models.MetaData{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: totalPages,
		},
	}, nil
}

func (s *ProductService) GetProductByID(id int) (*models.Product, error) {
	return s.productRepo.GetProductByID(id)
}

func (s *ProductService) GetProductsByIDs(ids []int) (map[int]models.Product, error) {
	return s.productRepo.GetProductsByIDs(ids)
}

func (s *ProductService) CreateProduct(req models.CreateProductRequest) (*models.Product, error) {
	if req.Price.IsNegative() {
		return nil, errors.New("price cannot be negative")
	}

	product := &models.Product{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Price:        req.Price,
		Stock:        req.Stock,
		ImageURL:     req.ImageURL,
		CloudinaryID: req.CloudinaryID,
		PriceRef:     req.PriceRef,
		ProductRef:   req.ProductRef,
		IsActive:     true,
	}

	if err := s.productRepo.CreateProduct(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) UpdateProduct(id int, req models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.productRepo.GetProductByID(id)
	if err != nil {
		return nil, errors.New("product not found")
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.Price.IsPositive() {
		product.Price = req.Price
	}
	if req.Stock >= 0 {
		product.Stock = req.Stock
	}
	if req.ImageURL != "" {
		// Drop the superseded Cloudinary asset, if any.
		if product.CloudinaryID != "" && req.CloudinaryID != product.CloudinaryID {
			if err := libs.DeleteFromCloudinary(product.CloudinaryID); err != nil {
				log.Printf("product: failed to delete old image %s: %v", product.CloudinaryID, err)
			}
		}
		product.ImageURL = req.ImageURL
		product.CloudinaryID = req.CloudinaryID
	}
	if req.PriceRef != "" {
		product.PriceRef = req.PriceRef
	}
	if req.ProductRef != "" {
		product.ProductRef = req.ProductRef
	}
	product.IsActive = req.IsActive

	if err := s.productRepo.UpdateProduct(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(id int) error {
	return s.productRepo.DeleteProduct(id)
}
