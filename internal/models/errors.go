package models

import "errors"

// 領域錯誤分成五類：輸入驗證、外鍵參照、目標不存在、唯一性衝突、其他儲存層錯誤。
// 呼叫端用 errors.Is 判斷類別，錯誤訊息直接回傳給使用者。
var (
	// 輸入驗證
	ErrMissingFields     = errors.New("缺少必要欄位")
	ErrInvalidVoteValue  = errors.New("無效的投票選項，必須是 yes、no 或 abstain")
	ErrInvalidStatus     = errors.New("無效的提案狀態")
	ErrInvalidTransition = errors.New("不允許的提案狀態轉換")

	// 外鍵參照
	ErrInvalidReference = errors.New("參照的使用者或提案不存在")

	// 目標不存在
	ErrUserNotFound     = errors.New("使用者不存在")
	ErrProposalNotFound = errors.New("提案不存在")
	ErrVoteNotFound     = errors.New("投票紀錄不存在")

	// 唯一性衝突
	ErrDuplicateUser = errors.New("使用者名稱或電子郵件已被註冊")
	ErrDuplicateVote = errors.New("已對此提案投過票，請改用更新投票")

	// 業務規則
	ErrVotingNotOpen = errors.New("提案目前不開放投票")
	ErrNotDraft      = errors.New("提案已離開草稿狀態，無法編輯")
	ErrNotAuthor     = errors.New("只有提案作者可以執行此操作")
	ErrNotVoteOwner  = errors.New("只能修改自己的投票")

	// 其他儲存層錯誤
	ErrStorage = errors.New("資料庫操作失敗")
)
