package review

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/pu-ac-cn/geo-console/internal/model"
)

func statusGen() gopter.Gen {
	return gen.OneConstOf(
		model.StatusDraft,
		model.StatusPendingReview,
		model.StatusApproved,
		model.StatusRejected,
	)
}

// Property 1: 提交审核仅对草稿生效
// *For any* 状态，SubmitForReview 成功当且仅当状态为草稿，成功后状态为待审核
func TestProperty_SubmitOnlyFromDraft(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("草稿可提交，其他状态拒绝", prop.ForAll(
		func(status model.ReviewStatus) bool {
			out, err := SubmitForReview(newMapItem(status), testNow)
			if status == model.StatusDraft {
				return err == nil && out.Status == model.StatusPendingReview
			}
			return err != nil && out == nil
		},
		statusGen(),
	))

	properties.TestingRun(t)
}

// Property 2: 审核结论仅对待审核生效
// *For any* 状态和非空原因，通过或驳回成功当且仅当状态为待审核
func TestProperty_DecisionOnlyFromPending(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("通过与驳回只接受待审核", prop.ForAll(
		func(status model.ReviewStatus, reason string, approve bool) bool {
			item := newMapItem(status)
			var (
				out *model.Resource
				err error
			)
			if approve {
				out, err = Approve(item, reason, "审核员", testNow)
			} else {
				out, err = Reject(item, reason, "审核员", testNow)
			}
			if status != model.StatusPendingReview {
				return err != nil
			}
			if err != nil {
				return false
			}
			if approve {
				return out.Status == model.StatusApproved && out.PublishTime != nil
			}
			return out.Status == model.StatusRejected && out.ProcessResult == strings.TrimSpace(reason)
		},
		statusGen(),
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// Property 3: 流转不修改入参
// *For any* 状态和操作，流转函数返回新副本，原资源保持原状态
func TestProperty_TransitionsArePure(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("原资源不变", prop.ForAll(
		func(status model.ReviewStatus, idx int) bool {
			item := newMapItem(status)
			switch idx {
			case 0:
				_, _ = SubmitForReview(item, testNow)
			case 1:
				_, _ = Resubmit(item, testNow)
			case 2:
				_, _ = Approve(item, "同意", "审核员", testNow)
			default:
				_, _ = Reject(item, "不同意", "审核员", testNow)
			}
			return item.Status == status && item.SubmitTime == nil && item.ProcessResult == ""
		},
		statusGen(),
		gen.IntRange(0, 3),
	))

	properties.TestingRun(t)
}

// Property 4: 编辑保持状态
// *For any* 可编辑状态和非空名称，编辑后状态不变且名称更新
func TestProperty_EditKeepsStatus(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("编辑不改变审核状态", prop.ForAll(
		func(status model.ReviewStatus, name string) bool {
			item := newMapItem(status)
			out, err := Edit(item, model.ResourcePatch{Name: &name})
			if !Can(status, model.ActionEdit) {
				return err != nil
			}
			return err == nil && out.Status == status && out.Name == name
		},
		statusGen(),
		gen.Identifier(),
	))

	properties.TestingRun(t)
}
