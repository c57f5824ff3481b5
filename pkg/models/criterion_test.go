//go:build unit || !integration

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
	"sigs.k8s.io/yaml"

	"github.com/genie-oss/genie/pkg/genieerrors"
)

type CriterionTestSuite struct {
	suite.Suite
}

func TestCriterionTestSuite(t *testing.T) {
	suite.Run(t, new(CriterionTestSuite))
}

func (s *CriterionTestSuite) TestEmptyCriterionRejected() {
	_, err := NewCriterionBuilder().Build()
	s.Require().Error(err)
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.ValidationError))

	_, err = NewCriterionBuilder().Name("   ").Build()
	s.Error(err)
}

func (s *CriterionTestSuite) TestBlankTagRejected() {
	_, err := NewCriterionBuilder().Tags("prod", "").Build()
	s.Require().Error(err)
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.ValidationError))
	s.Equal("criterion tags cannot be blank", err.Error())
}

func (s *CriterionTestSuite) TestTagsNormalized() {
	c := NewCriterionBuilder().Tags("prod", "hadoop", "prod").MustBuild()
	s.Equal([]string{"hadoop", "prod"}, c.Tags())
}

func (s *CriterionTestSuite) TestTagsReturnsCopy() {
	c := NewCriterionBuilder().Tags("a", "b").MustBuild()
	tags := c.Tags()
	tags[0] = "mutated"
	s.Equal([]string{"a", "b"}, c.Tags())
}

func (s *CriterionTestSuite) TestString() {
	c := NewCriterionBuilder().Name("hive").Version("2.1").Tags("b", "a").MustBuild()
	s.Equal("{name=hive version=2.1 tags=[a,b]}", c.String())
}

func (s *CriterionTestSuite) TestJSONRoundTripValidates() {
	var c Criterion
	s.Require().NoError(json.Unmarshal([]byte(`{"name":"hive","tags":["x"]}`), &c))
	s.Equal("hive", c.Name())
	s.Equal([]string{"x"}, c.Tags())

	s.Error(json.Unmarshal([]byte(`{}`), &c))
}

func (s *CriterionTestSuite) TestYAMLDecodeOfRequest() {
	doc := `
name: nightly
user: etl
version: "1.0"
clusterCriteria:
  - tags: [prod, hadoop]
  - tags: [test]
commandCriterion:
  name: hive
`
	var req JobRequest
	s.Require().NoError(yaml.Unmarshal([]byte(doc), &req))
	s.Require().Len(req.ClusterCriteria, 2)
	s.Equal([]string{"hadoop", "prod"}, req.ClusterCriteria[0].Tags())
	s.Equal("hive", req.CommandCriterion.Name())
	s.NoError(req.Validate())
}
