// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package component

import "context"

// Repository reads stored components. Missing rows are reported as (nil, nil).
type Repository interface {
	GetText(context context.Context, id string) (*Text, error)
	GetImage(context context.Context, id string) (*Image, error)
	GetLink(context context.Context, id string) (*LinkItem, error)
}
