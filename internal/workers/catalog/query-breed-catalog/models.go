package querybreedcatalog

import "dogmatch-workers/internal/workers/catalog/query-breed-catalog/queries"

type Input struct {
	QueryType  string `json:"queryType"`
	BreedName  string `json:"breedName,omitempty"`
	BreedGroup string `json:"breedGroup,omitempty"`
	Size       string `json:"size,omitempty"`
}

type Output struct {
	Data               interface{} `json:"data"`
	RowCount           int         `json:"rowCount"`
	QueryExecutionTime int64       `json:"queryExecutionTime"` // milliseconds
}

type QueryType = queries.QueryType

var (
	QueryTypeAllBreeds     = queries.QueryTypeAllBreeds
	QueryTypeBreedByName   = queries.QueryTypeBreedByName
	QueryTypeBreedsByGroup = queries.QueryTypeBreedsByGroup
	QueryTypeBreedsBySize  = queries.QueryTypeBreedsBySize
)
