package model

import "time"

// BaseModel 模型基类，为每个表补充自增主键与创建/更新时间
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"create_time"`
	UpdatedAt time.Time `json:"update_time"`
}

// TimeLayout 对外展示时间的统一格式
const TimeLayout = "2006-01-02 15:04:05"
