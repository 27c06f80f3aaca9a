package db

import (
	"fmt"
	"strconv"

	"github.com/tabfuse/tabfuse/constants"
	"github.com/tabfuse/tabfuse/model"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

const tableName = "tabfuse-runs"

func newClient() *dynamodb.DynamoDB {
	endpoint := constants.GetDynamoEndpoint()
	session, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: &endpoint,
	})
	if err != nil {
		panic("Could not create a new DynamoDB session because " + err.Error())
	}
	return dynamodb.New(session)
}

// PutRunSummary persists one transcription run record. Callers gate
// on constants.GetDynamoEndpoint() being non-empty.
func PutRunSummary(summary model.RunSummary) {
	client := newClient()

	item := map[string]*dynamodb.AttributeValue{
		"PK":          {S: aws.String(summary.RunId)},
		"Input":       {S: aws.String(summary.Input)},
		"TotalNotes":  {N: aws.String(strconv.Itoa(summary.TotalNotes))},
		"AvgConf":     {N: aws.String(fmt.Sprintf("%f", summary.AverageConfidence))},
		"Corrections": {N: aws.String(strconv.Itoa(summary.Corrections))},
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(tableName),
		Item:      item,
	}
	if _, err := client.PutItem(input); err != nil {
		panic("Error from DynamoDB: " + err.Error())
	}
}

// GetRunSummaries fetches previously persisted runs by id.
func GetRunSummaries(runIds []string) map[string]model.RunSummary {
	if len(runIds) > 10 {
		panic("Not supposed to pass in more than 10 run ids!")
	}

	res := make(map[string]model.RunSummary)
	if len(runIds) == 0 {
		return res
	}

	var keys []map[string]*dynamodb.AttributeValue
	for _, runId := range runIds {
		key := make(map[string]*dynamodb.AttributeValue)
		key["PK"] = &dynamodb.AttributeValue{
			S: aws.String(runId),
		}
		keys = append(keys, key)
	}

	client := newClient()
	input := &dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			tableName: {Keys: keys},
		},
	}
	dbres, err := client.BatchGetItem(input)
	if err != nil {
		panic("Error from DynamoDB: " + err.Error())
	}

	for _, v := range dbres.Responses[tableName] {
		var s model.RunSummary
		s.RunId = *v["PK"].S
		if v["Input"] != nil && v["Input"].S != nil {
			s.Input = *v["Input"].S
		}
		if v["TotalNotes"] != nil && v["TotalNotes"].N != nil {
			total, _ := strconv.Atoi(*v["TotalNotes"].N)
			s.TotalNotes = total
		}
		if v["AvgConf"] != nil && v["AvgConf"].N != nil {
			avg, _ := strconv.ParseFloat(*v["AvgConf"].N, 64)
			s.AverageConfidence = avg
		}
		if v["Corrections"] != nil && v["Corrections"].N != nil {
			corrections, _ := strconv.Atoi(*v["Corrections"].N)
			s.Corrections = corrections
		}
		res[s.RunId] = s
	}

	return res
}
