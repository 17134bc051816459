package model

import "strconv"

type PlayerID int64

type ScoreID int64

func (id PlayerID) String() string { return strconv.FormatInt(int64(id), 10) }

func (id ScoreID) String() string { return strconv.FormatInt(int64(id), 10) }

// Params is the operator's selection for a single run.
type Params struct {
	CustomMode CustomMode
	Mode       Mode
	Page       int
}

// DownloadTask is one queued replay download.
type DownloadTask struct {
	PlayerID PlayerID
	ScoreID  ScoreID
}

// Queue is materialized in full before the download phase starts.
type Queue []DownloadTask
