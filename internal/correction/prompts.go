package correction

import (
	"fmt"
	"time"

	"github.com/aleister1102/grammarwhiz/internal/models"
)

var scenarioPrompts = map[models.Scenario]string{
	models.ScenarioPublishing: "你是一个资深的报社主编。请对以下中文文本进行极其严谨的校对。重点检查：1. 错别字、标点符号错误。2. 政治性差错审查（如领导人姓名、职务、地名、重大事件表述是否准确）。3. 语法错误和语病。4. 智能排版（段落缩进、全半角符号规范）。",
	models.ScenarioNewMedia:   "你是一个资深的新媒体编辑。请对以下中文文本进行校对和润色。重点检查：1. 错别字、标点符号错误。2. 优化句式，使其更符合网络阅读习惯，语言活泼、有网感。3. 适当增加分段，提升阅读体验。4. 智能排版。",
	models.ScenarioOfficial:   "你是一个资深的政府机关笔杆子。请对以下中文文本进行公文规范校对。重点检查：1. 错别字、标点符号错误。2. 政治性差错审查。3. 确保用词准确、庄重、严谨，符合党政机关公文格式规范。4. 逻辑结构清晰。",
}

const instructionSuffix = "今日日期是：%s。请以此作为时间基准，不要误判正确的日期表述。请以 JSON 格式返回结果，包含 'corrected' (修改后的全文) 和 'explanations' (修改意见说明列表，解释为什么要这么改)。"

// NewspaperExtractionPrompt asks the model to transcribe a newspaper PDF.
const NewspaperExtractionPrompt = `你是一个专业的报纸数字化专家。请分析这个报纸PDF文件。
要求：
1. 识别并提取所有新闻文章。
2. 必须正确处理分栏逻辑，确保文章正文上下文衔接自然，不要跨栏混淆。
3. 提取每篇文章的：标题、作者（如果有）、正文。
4. 提取报纸的：出版日期、版次（如 A01, 01版）。
5. 剔除所有无关信息：天气预报、农历、广告、报头无关杂讯。
6. 每篇文章之间用 '---' 分割线。
7. 严格按照以下格式输出：

日期：[日期]
版次：[版次]

标题：[文章1标题]
作者：[文章1作者]
正文：[文章1正文]

---

标题：[文章2标题]
作者：[文章2作者]
正文：[文章2正文]

...以此类推。`

// SystemInstruction builds the instruction for a scenario, anchored to the given day.
func SystemInstruction(scenario models.Scenario, now time.Time) (string, error) {
	prompt, ok := scenarioPrompts[scenario]
	if !ok {
		return "", fmt.Errorf("no prompt for scenario %q", scenario)
	}
	return prompt + "\n\n" + fmt.Sprintf(instructionSuffix, now.UTC().Format("2006-01-02")), nil
}
