package models

import "strings"

// CategoryID 护理记录类别（封闭集合）
type CategoryID string

const (
	CategorySeizure       CategoryID = "seizure"
	CategoryExpression    CategoryID = "expression"
	CategoryHydration     CategoryID = "hydration"
	CategoryPositioning   CategoryID = "positioning"
	CategoryActivity      CategoryID = "activity"
	CategoryExcretion     CategoryID = "excretion"
	CategorySkinOralCare  CategoryID = "skin_oral_care"
	CategoryCondition     CategoryID = "condition"
	CategorySleep         CategoryID = "sleep"
	CategoryCoughChoke    CategoryID = "cough_choke"
	CategoryTubeFeeding   CategoryID = "tube_feeding"
	CategoryMedication    CategoryID = "medication"
	CategoryVital         CategoryID = "vital"
	CategoryBehavior      CategoryID = "behavior"
	CategoryCommunication CategoryID = "communication"
	CategoryRehab         CategoryID = "rehab"
	CategoryOther         CategoryID = "other"
)

// AllCategories 固定的类别顺序（打印顺序）
var AllCategories = []CategoryID{
	CategorySeizure,
	CategoryExpression,
	CategoryHydration,
	CategoryPositioning,
	CategoryActivity,
	CategoryExcretion,
	CategorySkinOralCare,
	CategoryCondition,
	CategorySleep,
	CategoryCoughChoke,
	CategoryTubeFeeding,
	CategoryMedication,
	CategoryVital,
	CategoryBehavior,
	CategoryCommunication,
	CategoryRehab,
	CategoryOther,
}

var categoryLabels = map[CategoryID]string{
	CategorySeizure:       "発作",
	CategoryExpression:    "表情・反応",
	CategoryHydration:     "水分補給",
	CategoryPositioning:   "体位変換",
	CategoryActivity:      "活動",
	CategoryExcretion:     "排泄",
	CategorySkinOralCare:  "皮膚・口腔ケア",
	CategoryCondition:     "体調",
	CategorySleep:         "睡眠",
	CategoryCoughChoke:    "咳・むせ",
	CategoryTubeFeeding:   "経管栄養",
	CategoryMedication:    "服薬",
	CategoryVital:         "バイタル",
	CategoryBehavior:      "行動",
	CategoryCommunication: "コミュニケーション",
	CategoryRehab:         "リハビリ",
	CategoryOther:         "その他",
}

// Label 打印用的类别名称
func (c CategoryID) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// categoryTagAliases 事件历史中出现过的类别写法
var categoryTagAliases = map[string]CategoryID{
	"vitals":     CategoryVital,
	"skin_care":  CategorySkinOralCare,
	"oral_care":  CategorySkinOralCare,
	"cough":      CategoryCoughChoke,
	"aspiration": CategoryCoughChoke,
	"tube":       CategoryTubeFeeding,
	"behavioral": CategoryBehavior,
}

// ParseCategoryTag 将记录自带的类别标签映射为 CategoryID
// 返回 false 表示标签不属于已知类别
func ParseCategoryTag(tag string) (CategoryID, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if c, ok := categoryTagAliases[tag]; ok {
		return c, true
	}
	if _, ok := categoryLabels[CategoryID(tag)]; ok {
		return CategoryID(tag), true
	}
	return "", false
}
