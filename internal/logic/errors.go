package logic

import "errors"

// ErrCampaignNotFound 项目不存在
var ErrCampaignNotFound = errors.New("项目不存在")
