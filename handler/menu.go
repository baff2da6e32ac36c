package handler

import (
	"errors"
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func GetCategories(c *fiber.Ctx) error {
	db := database.DB
	var categories []model.Category
	if err := db.Where("active = ?", true).Order("sort_order ASC, id ASC").Find(&categories).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, categories)
}

func CreateCategory(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.CreateCategoryInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing input in locals"))
	}

	db := database.DB
	category := model.Category{
		Name:      input.Name,
		SortOrder: input.SortOrder,
		Active:    true,
	}
	if err := db.Create(&category).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, category)
}

func GetMenuItems(c *fiber.Ctx) error {
	filterInput := new(model.FilterMenu)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.MenuItem{})
	if filterInput.SearchKey != "" {
		search := "%" + strings.ToLower(filterInput.SearchKey) + "%"
		condition = condition.Where("LOWER(name) LIKE ?", search)
	}
	if filterInput.CategoryId != nil {
		condition = condition.Where("category_id = ?", filterInput.CategoryId)
	}
	if filterInput.Available != nil {
		condition = condition.Where("available = ?", filterInput.Available)
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var items []model.MenuItem
	condition.Order("id ASC").Find(&items)
	response := &model.ResponseCustom{
		Rows:       items,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// Thực đơn công khai cho khách: nhóm theo danh mục, chỉ món còn bán
func GetPublicMenu(c *fiber.Ctx) error {
	db := database.DB
	var categories []model.Category
	err := db.Where("active = ?", true).
		Preload("MenuItems", "available = ?", true).
		Order("sort_order ASC, id ASC").
		Find(&categories).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, categories)
}

func CreateMenuItem(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.CreateMenuItemInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing input in locals"))
	}

	db := database.DB
	var category model.Category
	if err := db.First(&category, input.CategoryId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Danh mục không tồn tại", err)
	}

	var item model.MenuItem
	err := db.Transaction(func(tx *gorm.DB) error {
		menuSlug, err := helper.GenerateUniqueMenuSlug(tx, input.Name)
		if err != nil {
			return err
		}
		item = model.MenuItem{
			CategoryId:  input.CategoryId,
			Name:        input.Name,
			Slug:        menuSlug,
			Description: input.Description,
			Price:       input.Price,
			ImageUrl:    input.ImageUrl,
			Available:   true,
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, item)
}

func EditMenuItem(c *fiber.Ctx) error {
	itemId, err := c.ParamsInt("itemId")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	var input model.UpdateMenuItemInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	if input.Price != nil && *input.Price <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Giá món phải lớn hơn 0", errors.New("invalid price"))
	}

	db := database.DB
	var item model.MenuItem
	if err := db.First(&item, itemId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	if input.CategoryId != nil {
		var category model.Category
		if err := db.First(&category, *input.CategoryId).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Danh mục không tồn tại", err)
		}
	}

	renamed := input.Name != nil && *input.Name != item.Name
	if err := copier.CopyWithOption(&item, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}
	if input.Available != nil {
		item.Available = *input.Available
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if renamed {
			menuSlug, err := helper.GenerateUniqueMenuSlug(tx, item.Name)
			if err != nil {
				return err
			}
			item.Slug = menuSlug
		}
		return tx.Save(&item).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

// Món đã từng nằm trong đơn hàng thì chỉ ẩn đi, không xóa cứng
func DeleteMenuItem(c *fiber.Ctx) error {
	itemId, err := c.ParamsInt("itemId")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	db := database.DB
	var item model.MenuItem
	if err := db.First(&item, itemId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	var usedCount int64
	db.Model(&model.OrderDetail{}).Where("menu_item_id = ?", itemId).Count(&usedCount)
	if usedCount > 0 {
		item.Available = false
		if err := db.Save(&item).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
		}
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"hidden": itemId})
	}

	if err := db.Delete(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": itemId})
}
