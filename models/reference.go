package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type DistrictRegion struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id" yaml:"-"`
	Region    string             `bson:"region" json:"region" yaml:"region"`
	Districts []string           `bson:"districts" json:"districts" yaml:"districts"`
}

type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id" yaml:"-"`
	Name        string             `bson:"name" json:"name" yaml:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty" yaml:"description"`
}

type Feature struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id" yaml:"-"`
	Title       string             `bson:"title" json:"title" yaml:"title"`
	Description string             `bson:"description" json:"description" yaml:"description"`
	Icon        string             `bson:"icon,omitempty" json:"icon,omitempty" yaml:"icon"`
}

type HowItWorksStep struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id" yaml:"-"`
	Step        int                `bson:"step" json:"step" yaml:"step"`
	Title       string             `bson:"title" json:"title" yaml:"title"`
	Description string             `bson:"description" json:"description" yaml:"description"`
}

// ReferenceData is the static content served to the landing and form pages.
type ReferenceData struct {
	Districts  []DistrictRegion `yaml:"districtbyRegion"`
	Categories []Category       `yaml:"categories"`
	Features   []Feature        `yaml:"features"`
	Steps      []HowItWorksStep `yaml:"howItWorksSteps"`
}
