package handler

import (
	"errors"
	"fmt"
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

func GetTables(c *fiber.Ctx) error {
	db := database.DB
	var tables []model.Table
	if err := db.Order("number ASC").Find(&tables).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, tables)
}

func CreateTable(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.CreateTableInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing input in locals"))
	}

	db := database.DB
	var count int64
	db.Model(&model.Table{}).Where("number = ?", input.Number).Count(&count)
	if count > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, fmt.Sprintf("Bàn số %d đã tồn tại", input.Number), errors.New("table number exists"))
	}

	table := model.Table{
		Number: input.Number,
		Name:   input.Name,
		Seats:  input.Seats,
		Status: constants.TABLE_AVAILABLE,
	}
	if table.Name == "" {
		table.Name = fmt.Sprintf("Bàn %d", input.Number)
	}
	if err := db.Create(&table).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, table)
}

func EditTable(c *fiber.Ctx) error {
	tableId, err := c.ParamsInt("tableId")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	var input model.UpdateTableInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	if input.Status != nil {
		switch *input.Status {
		case constants.TABLE_AVAILABLE, constants.TABLE_OCCUPIED:
		default:
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Trạng thái bàn không hợp lệ", errors.New("invalid table status"))
		}
	}

	db := database.DB
	var table model.Table
	if err := db.First(&table, tableId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	if err := copier.CopyWithOption(&table, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}
	if err := db.Save(&table).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, table)
}

// Không cho xóa bàn còn đơn chưa kết thúc
func DeleteTable(c *fiber.Ctx) error {
	tableId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing inputId in locals"))
	}

	db := database.DB
	var table model.Table
	if err := db.First(&table, tableId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	var activeOrders int64
	db.Model(&model.Order{}).
		Where("table_id = ? AND status IN ?", tableId, []string{constants.ORDER_PENDING, constants.ORDER_COOKING, constants.ORDER_SERVED}).
		Count(&activeOrders)
	if activeOrders > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Bàn còn đơn hàng chưa kết thúc", errors.New("table has active orders"))
	}

	if err := db.Delete(&table).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": tableId})
}
