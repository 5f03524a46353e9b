package source

// builtinComponents returns the literal source of every previewable
// component. The dialect is deliberately small: single-line imports,
// a single export default function, h() calls for markup, and the
// useState/useEffect/fetch bindings supplied by the sandbox.
func builtinComponents() []Component {
	return []Component{
		{
			ID:    "faculty-badge",
			Title: "Faculty Badge Viewer",
			Source: `import { ValidationBadge } from './ValidationBadge';
import { ReputationIcon } from './ReputationIcon';
import { LoadingSpinner } from './LoadingSpinner';

export default function FacultyBadgeViewer(props) {
  const [faculty, setFaculty] = useState(null);
  const [failed, setFailed] = useState(false);
  useEffect(() => {
    const res = fetch('/api/faculty/' + props.facultyId);
    if (res.ok) {
      setFaculty(res.json());
    } else {
      setFailed(true);
    }
  }, [props.facultyId]);
  if (failed) {
    return h('panel', { kind: 'empty' }, 'no faculty record');
  }
  if (!faculty) {
    return h(LoadingSpinner, {});
  }
  return h('panel', { kind: 'faculty' },
    h('heading', null, faculty.display_name),
    h(ValidationBadge, { status: faculty.validation_status, size: 'large' }),
    h(ReputationIcon, { score: faculty.reputation_score }));
}
`,
		},
		{
			ID:    "reputation",
			Title: "Reputation Viewer",
			Source: `import { MetricStat } from './MetricStat';
import { ReputationIcon } from './ReputationIcon';
import { ErrorNotice } from './ErrorNotice';

export default function ReputationViewer(props) {
  const [rep, setRep] = useState(null);
  const [message, setMessage] = useState('');
  useEffect(() => {
    const res = fetch('/api/faculty/' + props.facultyId + '/reputation');
    if (res.ok) {
      setRep(res.json());
    } else {
      setMessage('reputation unavailable');
    }
  }, [props.facultyId]);
  if (message) {
    return h(ErrorNotice, { message: message });
  }
  if (!rep) {
    return h('panel', { kind: 'loading' }, 'fetching reputation');
  }
  return h('panel', { kind: 'reputation' },
    h(ReputationIcon, { score: rep.score }),
    h(MetricStat, { label: 'h-index', value: rep.h_index }),
    h(MetricStat, { label: 'citations', value: rep.total_citations }));
}
`,
		},
		{
			ID:    "publications",
			Title: "Publication List",
			Source: `import { PublicationTable } from './PublicationTable';
import { LoadingSpinner } from './LoadingSpinner';
import { ErrorNotice } from './ErrorNotice';

export default function PublicationList(props) {
  const [pubs, setPubs] = useState(null);
  const [failed, setFailed] = useState(false);
  useEffect(() => {
    const res = fetch('/api/faculty/' + props.facultyId + '/publications');
    if (res.ok) {
      setPubs(res.json());
    } else {
      setFailed(true);
    }
  }, [props.facultyId]);
  if (failed) {
    return h(ErrorNotice, { message: 'publications unavailable' });
  }
  if (!pubs) {
    return h(LoadingSpinner, {});
  }
  return h('panel', { kind: 'publications' },
    h(PublicationTable, { rows: pubs }));
}
`,
		},
		{
			ID:    "entity-card",
			Title: "Entity Card",
			Source: `import { FacultyCard } from './FacultyCard';

export default function EntityCard(props) {
  const [entity, setEntity] = useState(null);
  const [missing, setMissing] = useState(false);
  useEffect(() => {
    const res = fetch('/entity/' + props.entityId);
    if (res.ok) {
      setEntity(res.json());
    } else {
      setMissing(true);
    }
  }, [props.entityId]);
  if (missing) {
    return h('panel', { kind: 'empty' }, 'entity not found');
  }
  if (!entity) {
    return h('panel', { kind: 'loading' }, 'loading entity');
  }
  return h(FacultyCard, {
    name: entity.name,
    department: entity.department,
    institution: entity.institution,
  });
}
`,
		},
		{
			// Imports a dependency no substitute exists for; previews as a
			// diagnostic naming TimelineChart. Kept in the catalog so the
			// failure path stays visible in the host page.
			ID:    "author-timeline",
			Title: "Author Timeline (unmocked dependency)",
			Source: `import { MetricStat } from './MetricStat';
import { TimelineChart } from './TimelineChart';

export default function AuthorTimeline(props) {
  return h('panel', { kind: 'timeline' },
    h(TimelineChart, { facultyId: props.facultyId }),
    h(MetricStat, { label: 'span', value: 10 }));
}
`,
		},
	}
}
