package seed

import "github.com/Oohevt/Eco-Learn/internal/domain"

// sampleChapters is the built-in lesson catalog, carried over from the
// original deployment's seed data.
var sampleChapters = []domain.Chapter{
	{
		ChapterID:         "supply-demand",
		Title:             "供需理论",
		Description:       "解释市场价格形成的核心机制",
		Content:           "供需理论是经济学的基础。供给是指在特定价格下，生产者愿意出售的商品数量；需求是指在特定价格下，消费者愿意购买的商品数量。当供给等于需求时，市场达到均衡状态，形成均衡价格。",
		SimpleExplanation: "就像菜市场的菜价，买的人多、卖的人少，价格就涨；买的人少、卖的人多，价格就跌。",
		Category:          domain.CategoryMicro,
		Difficulty:        2,
		Order:             1,
		Examples: []domain.Example{
			{Title: "疫情期间口罩价格上涨", Explanation: "需求激增而供给不足"},
			{Title: "夏季西瓜价格下降", Explanation: "供给大量增加"},
		},
		RelatedCharts: []string{"supply-demand-chart"},
		IsPublished:   true,
	},
	{
		ChapterID:         "elasticity",
		Title:             "价格弹性",
		Description:       "衡量需求对价格变化的敏感程度",
		Content:           "价格弹性衡量的是当价格变化1%时，需求量变化的百分比。弹性大于1表示富有弹性（需求对价格敏感），弹性小于1表示缺乏弹性（需求对价格不敏感）。",
		SimpleExplanation: "奢侈品涨价大家就不买了，这是富有弹性；米面涨价大家还是得买，这是缺乏弹性。",
		Category:          domain.CategoryMicro,
		Difficulty:        3,
		Order:             2,
		Examples: []domain.Example{
			{Title: "苹果手机涨价", Explanation: "部分消费者转向安卓"},
			{Title: "食盐涨价", Explanation: "消费者需求几乎不变"},
		},
		RelatedCharts: []string{},
		IsPublished:   true,
	},
	{
		ChapterID:         "gdp",
		Title:             "国内生产总值",
		Description:       "衡量一个国家经济活动总量的指标",
		Content:           "GDP 是指一个国家或地区在一定时期内生产的所有最终产品和服务的市场价值。它包括消费、投资、政府支出和净出口四个组成部分。",
		SimpleExplanation: "就像计算一个家庭一年赚了多少钱，GDP 就是计算整个国家一年创造了多少价值。",
		Category:          domain.CategoryMacro,
		Difficulty:        2,
		Order:             3,
		Examples: []domain.Example{
			{Title: "中国GDP增长5%", Explanation: "经济整体扩张"},
		},
		RelatedCharts: []string{"gdp-chart"},
		IsPublished:   true,
	},
	{
		ChapterID:         "inflation",
		Title:             "通货膨胀",
		Description:       "物价总水平持续上涨的经济现象",
		Content:           "通货膨胀是指货币供给超过实际需求，导致货币贬值、物价普遍上涨的现象。适度的通胀（2%左右）通常被认为是健康的，但恶性通胀会破坏经济。",
		SimpleExplanation: "100块钱去年能买10斤猪肉，今年只能买8斤，这就是通货膨胀。",
		Category:          domain.CategoryMacro,
		Difficulty:        2,
		Order:             4,
		Examples: []domain.Example{
			{Title: "2023年部分国家通胀率", Explanation: "美国约4%，欧洲约6%"},
		},
		RelatedCharts: []string{"inflation-chart"},
		IsPublished:   true,
	},
	{
		ChapterID:         "stocks",
		Title:             "股票投资基础",
		Description:       "理解股票市场的基本原理",
		Content:           "股票代表公司所有权的一部分。投资者购买股票，实际上是在购买公司未来收益的份额。股票价格受公司业绩、行业趋势、宏观经济等多种因素影响。",
		SimpleExplanation: "买股票就是入股当老板，公司赚钱你分红，公司赔钱你也亏损。",
		Category:          domain.CategoryFinance,
		Difficulty:        2,
		Order:             5,
		Examples: []domain.Example{
			{Title: "苹果公司股票", Explanation: "长期持有获得丰厚回报"},
		},
		RelatedCharts: []string{},
		IsPublished:   true,
	},
	{
		ChapterID:         "bonds",
		Title:             "债券投资",
		Description:       "固定收益类金融工具",
		Content:           "债券是政府或企业向投资者发行的债务凭证。债券持有人定期获得利息，到期收回本金。债券风险通常低于股票，收益也相对稳定。",
		SimpleExplanation: "借钱给国家或公司，定期收利息，到期拿回本金。",
		Category:          domain.CategoryFinance,
		Difficulty:        2,
		Order:             6,
		Examples: []domain.Example{
			{Title: "国债", Explanation: "风险最低，收益稳定"},
		},
		RelatedCharts: []string{},
		IsPublished:   true,
	},
}
