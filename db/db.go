package db

import (
	"os"
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/maestro/model"
	"github.com/pkg/errors"
)

// DynamoDB caps BatchGetItem at 100 keys.
const maxBatch = 100

// MetadataStore looks up piece titles and artists keyed by piece name. A nil
// store is valid and knows nothing.
type MetadataStore struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewMetadataStore(endpoint, table string) (*MetadataStore, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "localhost"
	}
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(region),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating dynamodb session")
	}
	return &MetadataStore{client: dynamodb.New(sess), table: table}, nil
}

func (m *MetadataStore) GetMidiMetadatas(names []string) (map[string]model.PieceMetadata, error) {
	res := make(map[string]model.PieceMetadata)
	if m == nil {
		return res, nil
	}

	for start := 0; start < len(names); start += maxBatch {
		end := start + maxBatch
		if end > len(names) {
			end = len(names)
		}

		input := &dynamodb.BatchGetItemInput{
			RequestItems: map[string]*dynamodb.KeysAndAttributes{
				m.table: {Keys: keys(names[start:end])},
			},
		}
		out, err := m.client.BatchGetItem(input)
		if err != nil {
			return nil, errors.Wrap(err, "fetching piece metadata")
		}

		for _, item := range out.Responses[m.table] {
			if name, meta, ok := parseItem(item); ok {
				res[name] = meta
			}
		}
	}
	return res, nil
}

func keys(names []string) []map[string]*dynamodb.AttributeValue {
	var res []map[string]*dynamodb.AttributeValue
	for _, name := range names {
		res = append(res, map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(name)},
		})
	}
	return res
}

func stringAttr(item map[string]*dynamodb.AttributeValue, name string) string {
	if v, ok := item[name]; ok && v.S != nil {
		return *v.S
	}
	return ""
}

func parseItem(item map[string]*dynamodb.AttributeValue) (string, model.PieceMetadata, bool) {
	name := stringAttr(item, "PK")
	if name == "" {
		return "", model.PieceMetadata{}, false
	}

	var s model.PieceMetadata
	if v, ok := item["Year"]; ok && v.N != nil {
		year, _ := strconv.ParseUint(*v.N, 10, 32)
		s.Year = uint(year)
	}
	s.Artist = stringAttr(item, "Artist")
	s.Release = stringAttr(item, "Release")
	s.Title = stringAttr(item, "Title")
	if s.Title == "" {
		s.Title = name
	}
	return name, s, true
}
