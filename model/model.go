package model

import (
	"fmt"
	"runtime/debug"
)

type CustomError struct {
	Processor  string                 `json:"processor"`
	Inner      error                  `json:"innerError"`
	Message    string                 `json:"message"`
	StackTrace string                 `json:"stackTrace"`
	Misc       map[string]interface{} `json:"misc"`
}

func GenError(proc string, err error, misc map[string]interface{}, messagef string, args ...interface{}) CustomError {
	return CustomError{
		Processor:  proc,
		Inner:      err,
		Message:    fmt.Sprintf(messagef, args...),
		StackTrace: string(debug.Stack()),
		Misc:       misc,
	}
}

type CatalogStats struct {
	Folder    string         `json:"folder"`
	Cameras   int            `json:"cameras"`
	Frames    int            `json:"frames"`
	PerCamera map[string]int `json:"perCamera"`
	Timestamp int64          `json:"timestamp"`
}

type DetectorStats struct {
	Camera       string  `json:"camera"`
	Frames       int     `json:"frames"`
	Kept         int     `json:"kept"`
	Redundant    int     `json:"redundant"`
	Unreadable   int     `json:"unreadable"`
	Resized      int     `json:"resized"`
	Uptime       int64   `json:"uptime"`
	AvgScoreTime float64 `json:"avgScoreTime"`
	Timestamp    int64   `json:"timestamp"`
}

type RemoverStats struct {
	Requested int   `json:"requested"`
	Removed   int   `json:"removed"`
	Archived  int   `json:"archived"`
	Failed    int   `json:"failed"`
	Uptime    int64 `json:"uptime"`
	Timestamp int64 `json:"timestamp"`
}

type RunStats struct {
	RunID     string `json:"runId"`
	Mode      string `json:"mode"`
	Folder    string `json:"folder"`
	Cameras   int    `json:"cameras"`
	Frames    int    `json:"frames"`
	Unwanted  int    `json:"unwanted"`
	Removed   int    `json:"removed"`
	Uptime    int64  `json:"uptime"`
	Timestamp int64  `json:"timestamp"`
}
