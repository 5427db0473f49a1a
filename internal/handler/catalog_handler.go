package handler

import (
	"errors"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

func catalogError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		return fail(c, 404, err.Error())
	case errors.Is(err, service.ErrSKUExists), errors.Is(err, service.ErrProductInUse):
		return fail(c, 409, err.Error())
	}
	return fail(c, 400, err.Error())
}

func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	if err := h.service.CreateProduct(&product, getUserID(c), getUserName(c)); err != nil {
		return catalogError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "message": "Product created", "data": product})
}

func (h *CatalogHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return c.JSON(products)
}

func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid product ID")
	}

	product, err := h.service.GetProductByID(productID)
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(product)
}

func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid product ID")
	}

	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	updated, err := h.service.UpdateProduct(productID, &product, getUserID(c), getUserName(c))
	if err != nil {
		return catalogError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Product updated", "data": updated})
}

func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid product ID")
	}

	if err := h.service.DeleteProduct(productID, getUserID(c), getUserName(c)); err != nil {
		return catalogError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Product deleted"})
}

func (h *CatalogHandler) CreateVariant(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid product ID")
	}

	var variant model.Variant
	if err := c.BodyParser(&variant); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	if err := h.service.CreateVariant(productID, &variant, getUserID(c), getUserName(c)); err != nil {
		return catalogError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "message": "Variant created", "data": variant})
}

func (h *CatalogHandler) UpdateVariant(c *fiber.Ctx) error {
	variantID, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid variant ID")
	}

	var variant model.Variant
	if err := c.BodyParser(&variant); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	updated, err := h.service.UpdateVariant(variantID, &variant, getUserID(c), getUserName(c))
	if err != nil {
		return catalogError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Variant updated", "data": updated})
}

func (h *CatalogHandler) DeleteVariant(c *fiber.Ctx) error {
	variantID, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid variant ID")
	}

	if err := h.service.DeleteVariant(variantID, getUserID(c), getUserName(c)); err != nil {
		return catalogError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Variant deleted"})
}
