package adapters

import (
	"time"

	"gorm.io/datatypes"

	"pokecard_backend/internal/feature/catalog/domain/entity"
)

// SpeciesModel is the persisted form of a catalog entry.
type SpeciesModel struct {
	SpeciesID int `gorm:"column:id;primaryKey;autoIncrement:false"`

	NameFrench   string `gorm:"size:64;not null"`
	NameEnglish  string `gorm:"size:64"`
	NameJapanese string `gorm:"size:64"`
	NameChinese  string `gorm:"size:64"`

	Types datatypes.JSONSlice[string]

	HP             int
	Attack         int
	Defense        int
	SpecialAttack  int
	SpecialDefense int
	Speed          int

	Image string `gorm:"size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName pins the table name.
func (SpeciesModel) TableName() string {
	return "species"
}

// ToEntity converts the model to a domain entity.
func (m *SpeciesModel) ToEntity() *entity.Species {
	types := make([]string, len(m.Types))
	copy(types, m.Types)
	return &entity.Species{
		SpeciesID: m.SpeciesID,
		Name: entity.Name{
			French:   m.NameFrench,
			English:  m.NameEnglish,
			Japanese: m.NameJapanese,
			Chinese:  m.NameChinese,
		},
		Types: types,
		Base: entity.BaseStats{
			HP:             m.HP,
			Attack:         m.Attack,
			Defense:        m.Defense,
			SpecialAttack:  m.SpecialAttack,
			SpecialDefense: m.SpecialDefense,
			Speed:          m.Speed,
		},
		Image: m.Image,
	}
}

// FromEntity converts a domain entity to a model.
func FromEntity(s *entity.Species) *SpeciesModel {
	types := datatypes.JSONSlice[string]{}
	if len(s.Types) > 0 {
		types = append(types, s.Types...)
	}
	return &SpeciesModel{
		SpeciesID:      s.SpeciesID,
		NameFrench:     s.Name.French,
		NameEnglish:    s.Name.English,
		NameJapanese:   s.Name.Japanese,
		NameChinese:    s.Name.Chinese,
		Types:          types,
		HP:             s.Base.HP,
		Attack:         s.Base.Attack,
		Defense:        s.Base.Defense,
		SpecialAttack:  s.Base.SpecialAttack,
		SpecialDefense: s.Base.SpecialDefense,
		Speed:          s.Base.Speed,
		Image:          s.Image,
	}
}
