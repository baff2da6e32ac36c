package helper

import (
	"fmt"
	"restaurant_manager/model"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// GenerateUniqueMenuSlug tạo slug từ tên món, thêm hậu tố số khi trùng
func GenerateUniqueMenuSlug(tx *gorm.DB, name string) (string, error) {
	base := slug.Make(name)
	result := base
	i := 1

	for {
		var count int64
		if err := tx.Model(&model.MenuItem{}).
			Where("slug = ?", result).
			Count(&count).Error; err != nil {
			return "", err
		}

		if count == 0 {
			break
		}
		result = fmt.Sprintf("%s-%d", base, i)
		i++
	}

	return result, nil
}
