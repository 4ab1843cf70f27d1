package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
)

// Step FunctionsのCauseの上限文字数
const maxTaskFailureCause = 32768

// TaskReporter はStep Functionsへのタスク結果通知に使うAPIです
// *sfn.Client が満たします
type TaskReporter interface {
	SendTaskSuccess(ctx context.Context, params *sfn.SendTaskSuccessInput, optFns ...func(*sfn.Options)) (*sfn.SendTaskSuccessOutput, error)
	SendTaskFailure(ctx context.Context, params *sfn.SendTaskFailureInput, optFns ...func(*sfn.Options)) (*sfn.SendTaskFailureOutput, error)
}

// sendTaskSuccess は、出力をJSONにしてStep Functionsのタスク成功を通知します
func sendTaskSuccess(ctx context.Context, client TaskReporter, taskToken string, output any) error {
	body, err := json.Marshal(output)
	if err != nil {
		return fmt.Errorf("failed to marshal task output: %w", err)
	}

	// ローカルの場合はStep Functionsの処理をスキップ
	if os.Getenv("ENV") == "LOCAL" || client == nil {
		log.Printf("Local environment detected. Skipping Step Functions task success notification: %s", string(body))
		return nil
	}

	if taskToken == "" {
		return fmt.Errorf("SFN_TASK_TOKEN is not set in config")
	}

	input := &sfn.SendTaskSuccessInput{
		TaskToken: aws.String(taskToken),
		Output:    aws.String(string(body)),
	}

	if _, err := client.SendTaskSuccess(ctx, input); err != nil {
		return fmt.Errorf("failed to send task success: %w", err)
	}

	log.Printf("Successfully sent task success: %s", string(body))
	return nil
}

// ReportTaskFailure は、バッチの失敗をStep Functionsのタスク失敗として通知します
// 通知しないとタスクはタイムアウトまで待ち続けます
func ReportTaskFailure(ctx context.Context, client TaskReporter, taskToken, errorName string, cause error) error {
	if os.Getenv("ENV") == "LOCAL" || client == nil {
		log.Printf("Local environment detected. Skipping Step Functions task failure notification: %s", errorName)
		return nil
	}

	causeText := ""
	if cause != nil {
		causeText = cause.Error()
	}
	if len(causeText) > maxTaskFailureCause {
		causeText = causeText[:maxTaskFailureCause]
	}

	input := &sfn.SendTaskFailureInput{
		TaskToken: aws.String(taskToken),
		Error:     aws.String(errorName),
		Cause:     aws.String(causeText),
	}

	if _, err := client.SendTaskFailure(ctx, input); err != nil {
		return fmt.Errorf("failed to send task failure: %w", err)
	}

	return nil
}
